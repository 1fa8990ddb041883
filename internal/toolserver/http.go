package toolserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/trialworks/sitescout/internal/audit"
	"github.com/trialworks/sitescout/internal/auth"
)

const readHeaderTimeout = 10 * time.Second

// Handler builds the full HTTP surface:
//
//	POST /mcp        JSON-RPC tool endpoint, bearer token + scope required
//	GET  /health     liveness, no auth
//	GET  /auth-logs  audit log read, any valid token
func (s *Server) Handler() http.Handler {
	streamable := server.NewStreamableHTTPServer(s.mcp,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
	)

	mw := auth.NewMiddleware(s.verifier, s.audit, s.logger)

	mux := http.NewServeMux()
	mux.Handle("/mcp", mw.Require(s.cfg.RequiredScope)(streamable))
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/auth-logs", mw.Require("")(http.HandlerFunc(s.handleAuthLogs)))
	return mux
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("tool server listening", "server", s.cfg.Name, "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"server": s.cfg.Name,
	})
}

// handleAuthLogs serves the audit log newest first. Optional query
// parameters narrow the view: subject (exact), tool (exact), q (substring).
func (s *Server) handleAuthLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := s.audit.Entries(r.Context())
	query := r.URL.Query()
	entries = audit.Filter(entries, query.Get("subject"), query.Get("tool"), query.Get("q"))
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
