package flow

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/trialworks/sitescout/internal/auth"
)

// Selector picks the bearer token attached to outbound tool-server calls
// for the active flow. Exactly one token is attached per call; tokens are
// never combined. Token acquisition and refresh live in the underlying
// oauth2.TokenSource implementations.
type Selector struct {
	flow   Flow
	direct oauth2.TokenSource
	agent  oauth2.TokenSource
	obo    oauth2.TokenSource
}

// NewSelector creates a selector for the given flow. Sources for flows that
// are not in use may be nil; selecting a flow whose source is nil fails with
// an unauthenticated error.
func NewSelector(f Flow, direct, agent, obo oauth2.TokenSource) *Selector {
	return &Selector{
		flow:   f,
		direct: direct,
		agent:  agent,
		obo:    obo,
	}
}

// Flow returns the active flow.
func (s *Selector) Flow() Flow {
	return s.flow
}

// Token returns the bearer token for the active flow. When the required
// token is unavailable the invocation fails here, before any network call
// toward a tool server is attempted.
func (s *Selector) Token(ctx context.Context) (string, error) {
	source := s.source()
	if source == nil {
		return "", fmt.Errorf("flow %s: no token source configured: %w", s.flow, auth.ErrUnauthenticated)
	}
	tok, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("flow %s: %v: %w", s.flow, err, auth.ErrUnauthenticated)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("flow %s: empty access token: %w", s.flow, auth.ErrUnauthenticated)
	}
	return tok.AccessToken, nil
}

func (s *Selector) source() oauth2.TokenSource {
	switch s.flow {
	case Direct:
		return s.direct
	case Agent:
		return s.agent
	case OBO:
		return s.obo
	default:
		return nil
	}
}

// StoreTokenSource adapts the session TokenStore to oauth2.TokenSource so
// the user's token participates in the same selection machinery as acquired
// tokens.
func StoreTokenSource(store *auth.TokenStore) oauth2.TokenSource {
	return storeSource{store: store}
}

type storeSource struct {
	store *auth.TokenStore
}

func (s storeSource) Token() (*oauth2.Token, error) {
	raw, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}, nil
}
