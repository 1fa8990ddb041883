package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier performs verified decoding of bearer tokens. Signature keys come
// from a jwt.Keyfunc, normally backed by a JWKS endpoint with background
// refresh; tests inject a static key instead.
type Verifier struct {
	keyfunc  jwt.Keyfunc
	issuer   string
	audience string
	methods  []string
}

// NewVerifier creates a verifier around an explicit key function. Issuer and
// audience are enforced when non-empty.
func NewVerifier(kf jwt.Keyfunc, issuer, audience string) *Verifier {
	return &Verifier{
		keyfunc:  kf,
		issuer:   issuer,
		audience: audience,
		methods:  []string{jwt.SigningMethodRS256.Alg()},
	}
}

// NewJWKSVerifier creates a verifier whose keys are fetched from a JWKS URL.
// The key set refreshes in the background until ctx is cancelled.
func NewJWKSVerifier(ctx context.Context, jwksURL, issuer, audience string) (*Verifier, error) {
	kf, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("load JWKS from %s: %w", jwksURL, err)
	}
	return NewVerifier(kf.Keyfunc, issuer, audience), nil
}

// Verify decodes and validates a compact token, returning its claims.
// Any structural, signature, expiry, issuer, or audience failure maps to
// ErrUnauthenticated.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", ErrUnauthenticated)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var tc tokenClaims
	token, err := jwt.ParseWithClaims(raw, &tc, v.keyfunc, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: token not valid", ErrUnauthenticated)
	}

	claims := &Claims{
		Subject:  tc.Subject,
		Issuer:   tc.Issuer,
		Audience: tc.Audience,
		Scopes:   tc.scopes(),
		Raw:      raw,
	}
	if tc.Act != nil {
		claims.ActorSubject = tc.Act.Subject
	}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims, nil
}

// RequireScope checks that verified claims carry the required scope.
func RequireScope(c *Claims, scope string) error {
	if scope == "" {
		return nil
	}
	if !c.HasScope(scope) {
		return fmt.Errorf("%w: required scope %q not present in token", ErrForbidden, scope)
	}
	return nil
}

// ExpiresIn reports how long the claims remain valid relative to now.
// Used by callers that refresh ahead of expiry.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	return c.ExpiresAt.Sub(now)
}
