// Package auth implements bearer-token verification and scope enforcement
// for the tool servers. Claims are only ever produced by a verified decode;
// nothing in this package branches on unverified token payloads.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Actor identifies the party acting on behalf of the token subject, per the
// OAuth token-exchange "act" claim (RFC 8693).
type Actor struct {
	Subject string `json:"sub"`
}

// Claims holds the verified claims of a bearer token.
type Claims struct {
	// Subject is the principal the token was issued for. Under an
	// on-behalf-of token this is the delegating user, not the agent.
	Subject string
	// ActorSubject is the acting party's subject when the token carries an
	// "act" claim; empty otherwise.
	ActorSubject string
	Issuer       string
	Audience     []string
	Scopes       []string
	IssuedAt     time.Time
	ExpiresAt    time.Time
	// Raw is the original compact token, kept so the server can forward or
	// log a token reference without re-encoding.
	Raw string
}

// HasScope reports whether the token carries the named scope.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// tokenClaims is the wire shape used during verified decoding. The scope
// claim appears either as a space-delimited "scope" string or an "scp"
// array depending on the identity provider.
type tokenClaims struct {
	jwt.RegisteredClaims
	Scope string   `json:"scope,omitempty"`
	Scp   []string `json:"scp,omitempty"`
	Act   *Actor   `json:"act,omitempty"`
}

func (tc *tokenClaims) scopes() []string {
	if tc.Scope != "" {
		return strings.Fields(tc.Scope)
	}
	return tc.Scp
}

type contextKey struct{}

// WithClaims returns a context carrying verified claims.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// ClaimsFromContext extracts verified claims previously stored by the
// middleware. The second return is false for requests that never passed
// token validation.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(*Claims)
	return c, ok
}
