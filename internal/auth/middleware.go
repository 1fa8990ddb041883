package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/trialworks/sitescout/internal/audit"
)

// Middleware guards HTTP endpoints with bearer-token validation. Validation
// order is fixed: token structure and signature first, then scope, and only
// then does the request body get interpreted by the protected handler.
type Middleware struct {
	verifier *Verifier
	audit    *audit.Logger
	logger   *slog.Logger
}

// NewMiddleware creates the auth middleware. Scope-denied requests are
// recorded in the audit log; requests that fail token validation are not,
// since there are no verified claims to attribute them to.
func NewMiddleware(verifier *Verifier, auditLog *audit.Logger, logger *slog.Logger) *Middleware {
	return &Middleware{
		verifier: verifier,
		audit:    auditLog,
		logger:   logger,
	}
}

// Require wraps next so that only requests carrying a valid bearer token
// with the given scope reach it. An empty scope means authentication only.
// Verified claims are placed on the request context for downstream handlers.
func (m *Middleware) Require(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				m.unauthorized(w, r, "authorization header missing or not a bearer token")
				return
			}

			claims, err := m.verifier.Verify(raw)
			if err != nil {
				m.unauthorized(w, r, err.Error())
				return
			}

			if err := RequireScope(claims, scope); err != nil {
				m.audit.Record(r.Context(), audit.Entry{
					Subject: claims.Subject,
					Actor:   claims.ActorSubject,
					Outcome: audit.OutcomeForbidden,
					Detail:  err.Error(),
				})
				m.logger.WarnContext(r.Context(), "scope denied",
					"subject", claims.Subject,
					"required_scope", scope,
				)
				writeJSONError(w, http.StatusForbidden, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func (m *Middleware) unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	m.logger.WarnContext(r.Context(), "unauthenticated request",
		"path", r.URL.Path,
		"detail", detail,
	)
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	writeJSONError(w, http.StatusUnauthorized, detail)
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// StatusForError maps auth errors to their HTTP status.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrNoToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
