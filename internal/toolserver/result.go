package toolserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/trialworks/sitescout/internal/audit"
	"github.com/trialworks/sitescout/internal/auth"
)

// JSONResult encodes a tool payload into the text content of a successful
// call result.
func JSONResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// EntryFor builds an audit entry for a tool invocation, attributing it to
// the verified claims on the request context.
func EntryFor(ctx context.Context, tool string, args map[string]any, outcome, detail string) audit.Entry {
	e := audit.Entry{
		Tool:      tool,
		Arguments: args,
		Outcome:   outcome,
		Detail:    detail,
	}
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		e.Subject = claims.Subject
		e.Actor = claims.ActorSubject
	}
	return e
}
