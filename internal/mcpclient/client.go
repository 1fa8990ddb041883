// Package mcpclient is the tool invocation client: one logical connection
// per tool server, carrying a single bearer token, with single-attempt
// semantics. Transport failures and in-envelope tool errors are surfaced to
// the caller; nothing is retried here.
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	clientName    = "sitescout-orchestrator"
	clientVersion = "0.1.0"
)

// ToolError is an application-level failure reported by the server inside
// the JSON-RPC envelope (isError), as opposed to a transport failure.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s: %s", e.Tool, e.Message)
}

// Client talks to one tool server over streamable HTTP with a fixed bearer
// token. The underlying connection is established once and reused for all
// calls.
type Client struct {
	serverURL string
	mcp       *client.Client
	logger    *slog.Logger
}

// New connects to serverURL (e.g. "http://localhost:4001/mcp") and performs
// the MCP handshake. The bearer token is attached to every request.
func New(ctx context.Context, serverURL, bearer string, logger *slog.Logger) (*Client, error) {
	trans, err := transport.NewStreamableHTTP(serverURL,
		transport.WithHTTPHeaders(map[string]string{
			"Authorization": "Bearer " + bearer,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create transport for %s: %w", serverURL, err)
	}

	c := client.NewClient(trans)
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("start client for %s: %w", serverURL, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("initialize %s: %w", serverURL, err)
	}

	logger.Debug("mcp client connected", "server_url", serverURL)
	return &Client{
		serverURL: serverURL,
		mcp:       c,
		logger:    logger,
	}, nil
}

// ListTools discovers the server's declared tools.
func (c *Client) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	res, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list tools on %s: %w", c.serverURL, err)
	}
	return res.Tools, nil
}

// CallTool invokes one tool and returns its decoded JSON payload. A server-
// reported tool error comes back as *ToolError with the message unchanged;
// transport failures are wrapped with their cause. Single attempt only.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := c.CallToolInto(ctx, name, args, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CallToolInto invokes one tool and decodes its JSON payload into v.
func (c *Client) CallToolInto(ctx context.Context, name string, args map[string]any, v any) error {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	c.logger.Debug("calling tool", "tool", name, "server_url", c.serverURL)
	res, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return fmt.Errorf("call %s on %s: %w", name, c.serverURL, err)
	}

	text := textContent(res)
	if res.IsError {
		return &ToolError{Tool: name, Message: text}
	}
	if text == "" {
		return fmt.Errorf("call %s on %s: empty result content", name, c.serverURL)
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("decode %s result: %w", name, err)
	}
	return nil
}

// Close shuts down the underlying connection.
func (c *Client) Close() error {
	return c.mcp.Close()
}

func textContent(res *mcp.CallToolResult) string {
	for _, content := range res.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			return tc.Text
		}
	}
	return ""
}
