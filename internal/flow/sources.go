package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Token-exchange parameter values from RFC 8693.
const (
	grantTypeTokenExchange = "urn:ietf:params:oauth:grant-type:token-exchange"
	tokenTypeJWT           = "urn:ietf:params:oauth:token-type:jwt"
)

// AgentCredentials configures how the agent authenticates as itself against
// the identity provider. Acquisition is a prerequisite step, not per-call:
// the returned source caches the token and refreshes it on expiry.
type AgentCredentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

// TokenSource returns a cached, auto-refreshing client-credentials source.
func (c AgentCredentials) TokenSource(ctx context.Context) oauth2.TokenSource {
	cfg := clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
		Scopes:       c.Scopes,
	}
	return cfg.TokenSource(ctx)
}

// ExchangeConfig configures the RFC 8693 token exchange that mints a
// delegated (on-behalf-of) token: the user's token is the subject, the
// agent's client credentials identify the actor.
type ExchangeConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// HTTPClient overrides the client used for the exchange; defaults to a
	// client with a 30 second timeout.
	HTTPClient *http.Client
}

// OBOTokenSource returns a source that exchanges the subject's token for a
// delegated token. Results are cached until expiry via ReuseTokenSource.
func OBOTokenSource(ctx context.Context, cfg ExchangeConfig, subject oauth2.TokenSource) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &oboSource{
		ctx:     ctx,
		cfg:     cfg,
		subject: subject,
	})
}

type oboSource struct {
	ctx     context.Context
	cfg     ExchangeConfig
	subject oauth2.TokenSource
}

func (s *oboSource) Token() (*oauth2.Token, error) {
	sub, err := s.subject.Token()
	if err != nil {
		return nil, fmt.Errorf("obtain subject token for exchange: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", grantTypeTokenExchange)
	form.Set("subject_token", sub.AccessToken)
	form.Set("subject_token_type", tokenTypeJWT)
	form.Set("client_id", s.cfg.ClientID)
	if s.cfg.ClientSecret != "" {
		form.Set("client_secret", s.cfg.ClientSecret)
	}
	if len(s.cfg.Scopes) > 0 {
		form.Set("scope", strings.Join(s.cfg.Scopes, " "))
	}

	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := s.cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read token exchange response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("token exchange failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode token exchange response: %w", err)
	}
	if parsed.AccessToken == "" {
		return nil, fmt.Errorf("token exchange response missing access_token")
	}

	tok := &oauth2.Token{
		AccessToken: parsed.AccessToken,
		TokenType:   parsed.TokenType,
	}
	if parsed.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second)
	}
	return tok, nil
}
