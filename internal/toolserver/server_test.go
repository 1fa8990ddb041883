package toolserver

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/trialworks/sitescout/internal/audit"
	"github.com/trialworks/sitescout/internal/auth"
)

const (
	testIssuer   = "https://idp.test/oauth2/token"
	testAudience = "sitescout"
)

type testServer struct {
	server *Server
	audit  *audit.Logger
	key    *rsa.PrivateKey
}

func newTestServer(t *testing.T, requiredScope string, tools []Tool) *testServer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	verifier := auth.NewVerifier(func(token *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	}, testIssuer, testAudience)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditLog := audit.NewLogger(audit.NewMemoryStore(), logger)

	srv := New(Config{
		Name:          "test-tools",
		Version:       "0.0.1",
		RequiredScope: requiredScope,
	}, verifier, auditLog, tools, logger)

	return &testServer{server: srv, audit: auditLog, key: key}
}

func (ts *testServer) token(t *testing.T, subject, scope string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   subject,
		"iss":   testIssuer,
		"aud":   testAudience,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
		"scope": scope,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(ts.key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestHealthNoAuth(t *testing.T) {
	ts := newTestServer(t, "read:demographics", nil)
	handler := ts.server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" || body["server"] != "test-tools" {
		t.Errorf("body = %v", body)
	}
}

func TestMCPRequiresToken(t *testing.T) {
	ts := newTestServer(t, "read:demographics", nil)
	handler := ts.server.Handler()

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestMCPRequiresScope(t *testing.T) {
	ts := newTestServer(t, "read:demographics", nil)
	handler := ts.server.Handler()

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, "user-42", "read:performance"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if ts.audit.Count() != 1 {
		t.Errorf("audit entries = %d, want 1 forbidden entry", ts.audit.Count())
	}
}

func TestAuthLogsRequiresToken(t *testing.T) {
	ts := newTestServer(t, "read:demographics", nil)
	handler := ts.server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/auth-logs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthLogsAnyScopeAndFiltering(t *testing.T) {
	ts := newTestServer(t, "read:demographics", nil)
	handler := ts.server.Handler()
	ctx := context.Background()

	ts.audit.Record(ctx, audit.Entry{Subject: "user-42", Tool: "search_patient_pools", Outcome: audit.OutcomeOK})
	ts.audit.Record(ctx, audit.Entry{Subject: "user-42", Tool: "get_demographics_by_region", Outcome: audit.OutcomeError, Detail: "region not found"})
	ts.audit.Record(ctx, audit.Entry{Subject: "user-99", Tool: "search_patient_pools", Outcome: audit.OutcomeOK})

	get := func(target string) []audit.Entry {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		// Log-read access needs only a valid token, not the tool scope.
		req.Header.Set("Authorization", "Bearer "+ts.token(t, "auditor", "openid"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", target, rec.Code)
		}
		var entries []audit.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatalf("decode entries: %v", err)
		}
		return entries
	}

	if got := get("/auth-logs"); len(got) != 3 {
		t.Errorf("unfiltered entries = %d, want 3", len(got))
	}
	if got := get("/auth-logs?subject=user-42"); len(got) != 2 {
		t.Errorf("subject-filtered entries = %d, want 2", len(got))
	}
	if got := get("/auth-logs?tool=search_patient_pools"); len(got) != 2 {
		t.Errorf("tool-filtered entries = %d, want 2", len(got))
	}
	if got := get("/auth-logs?q=not+found"); len(got) != 1 {
		t.Errorf("substring-filtered entries = %d, want 1", len(got))
	}
}

func TestJSONResult(t *testing.T) {
	res, err := JSONResult(map[string]int{"total_count": 2})
	if err != nil {
		t.Fatalf("JSONResult returned error: %v", err)
	}
	if res.IsError {
		t.Fatal("JSONResult produced an error result")
	}
	text, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("content is not text: %T", res.Content[0])
	}
	var decoded map[string]int
	if err := json.Unmarshal([]byte(text.Text), &decoded); err != nil {
		t.Fatalf("result text is not JSON: %v", err)
	}
	if decoded["total_count"] != 2 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestEntryFor(t *testing.T) {
	claims := &auth.Claims{Subject: "user-42", ActorSubject: "agent-7"}
	ctx := auth.WithClaims(context.Background(), claims)

	e := EntryFor(ctx, "search_sites", map[string]any{"region": "Northeast"}, audit.OutcomeOK, "")
	if e.Subject != "user-42" || e.Actor != "agent-7" {
		t.Errorf("attribution = (%q, %q)", e.Subject, e.Actor)
	}
	if e.Tool != "search_sites" {
		t.Errorf("Tool = %q", e.Tool)
	}

	anon := EntryFor(context.Background(), "search_sites", nil, audit.OutcomeOK, "")
	if anon.Subject != "" || anon.Actor != "" {
		t.Errorf("claims-less entry should be unattributed, got (%q, %q)", anon.Subject, anon.Actor)
	}
}
