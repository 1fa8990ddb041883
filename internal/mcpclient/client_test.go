package mcpclient

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trialworks/sitescout/internal/audit"
	"github.com/trialworks/sitescout/internal/auth"
	"github.com/trialworks/sitescout/internal/dataset"
	"github.com/trialworks/sitescout/internal/demographics"
	"github.com/trialworks/sitescout/internal/performance"
	"github.com/trialworks/sitescout/internal/toolserver"
)

const (
	testIssuer   = "https://idp.test/oauth2/token"
	testAudience = "sitescout"
)

type testFixture struct {
	demographics *httptest.Server
	performance  *httptest.Server
	demoAudit    *audit.Logger
	perfAudit    *audit.Logger
	key          *rsa.PrivateKey
}

// newTestFixture stands up both tool servers over real HTTP with a shared
// signing key, so client tests exercise the full stack: transport, token
// validation, dispatch, and audit recording.
func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	kf := func(token *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	demoAudit := audit.NewLogger(audit.NewMemoryStore(), logger)
	demoHandlers := demographics.NewHandlers(dataset.NewDemographicsStore(), demoAudit)
	demoServer := toolserver.New(toolserver.Config{
		Name:          demographics.ServerName,
		Version:       "test",
		RequiredScope: demographics.Scope,
	}, auth.NewVerifier(kf, testIssuer, testAudience), demoAudit, demoHandlers.Tools(), logger)

	perfAudit := audit.NewLogger(audit.NewMemoryStore(), logger)
	perfHandlers := performance.NewHandlers(dataset.NewPerformanceStore(), perfAudit)
	perfServer := toolserver.New(toolserver.Config{
		Name:          performance.ServerName,
		Version:       "test",
		RequiredScope: performance.Scope,
	}, auth.NewVerifier(kf, testIssuer, testAudience), perfAudit, perfHandlers.Tools(), logger)

	fixture := &testFixture{
		demographics: httptest.NewServer(demoServer.Handler()),
		performance:  httptest.NewServer(perfServer.Handler()),
		demoAudit:    demoAudit,
		perfAudit:    perfAudit,
		key:          key,
	}
	t.Cleanup(fixture.demographics.Close)
	t.Cleanup(fixture.performance.Close)
	return fixture
}

func (f *testFixture) token(t *testing.T, subject, actor, scope string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   subject,
		"iss":   testIssuer,
		"aud":   testAudience,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
		"scope": scope,
	}
	if actor != "" {
		claims["act"] = map[string]any{"sub": actor}
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(f.key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func (f *testFixture) connect(t *testing.T, serverURL, bearer string) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := New(context.Background(), serverURL+"/mcp", bearer, logger)
	if err != nil {
		t.Fatalf("connect to %s: %v", serverURL, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestListTools(t *testing.T) {
	f := newTestFixture(t)
	c := f.connect(t, f.performance.URL, f.token(t, "user-42", "", "read:performance"))

	tools, err := c.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools returned error: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"search_sites", "get_site_capabilities", "get_enrollment_history"} {
		if !names[want] {
			t.Errorf("tool %s not listed, got %v", want, names)
		}
	}
}

func TestCallToolRoundTrip(t *testing.T) {
	f := newTestFixture(t)
	c := f.connect(t, f.performance.URL, f.token(t, "user-42", "", "read:performance"))

	var result dataset.SiteSearchResult
	err := c.CallToolInto(context.Background(), "search_sites", map[string]any{
		"region": "Northeast",
	}, &result)
	if err != nil {
		t.Fatalf("CallToolInto returned error: %v", err)
	}
	if result.TotalCount != 3 {
		t.Fatalf("TotalCount = %d, want 3", result.TotalCount)
	}
	for _, site := range result.Sites {
		if !strings.HasPrefix(site.Region, "US-NE") {
			t.Errorf("site %s region %q escapes the filter", site.SiteID, site.Region)
		}
	}
}

func TestCallToolDirectResultsMatchStore(t *testing.T) {
	f := newTestFixture(t)
	c := f.connect(t, f.demographics.URL, f.token(t, "user-42", "", "read:demographics"))

	var viaClient dataset.PoolSearchResult
	err := c.CallToolInto(context.Background(), "search_patient_pools", map[string]any{
		"disease": "Type 2 Diabetes",
		"region":  "Northeast",
	}, &viaClient)
	if err != nil {
		t.Fatalf("CallToolInto returned error: %v", err)
	}

	direct := dataset.NewDemographicsStore().SearchPatientPools(dataset.PoolQuery{
		Disease: "Type 2 Diabetes",
		Region:  "Northeast",
	})

	if viaClient.TotalCount != direct.TotalCount {
		t.Fatalf("client TotalCount = %d, store TotalCount = %d", viaClient.TotalCount, direct.TotalCount)
	}
	for i := range direct.Pools {
		if viaClient.Pools[i].PoolID != direct.Pools[i].PoolID {
			t.Errorf("pool %d = %q via client, %q via store", i, viaClient.Pools[i].PoolID, direct.Pools[i].PoolID)
		}
	}
}

func TestCallToolErrorEnvelope(t *testing.T) {
	f := newTestFixture(t)
	c := f.connect(t, f.performance.URL, f.token(t, "user-42", "", "read:performance"))

	var caps dataset.Capabilities
	err := c.CallToolInto(context.Background(), "get_site_capabilities", map[string]any{
		"site_id": "SITE-999",
	}, &caps)
	if err == nil {
		t.Fatal("expected error for unknown site")
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error = %T %v, want *ToolError", err, err)
	}
	if toolErr.Tool != "get_site_capabilities" {
		t.Errorf("Tool = %q", toolErr.Tool)
	}
	if !strings.Contains(toolErr.Message, "not found") {
		t.Errorf("Message = %q, want the server's message unchanged", toolErr.Message)
	}
}

func TestCallRejectedWithoutScope(t *testing.T) {
	f := newTestFixture(t)

	// A demographics-scoped token must not open a performance connection.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := New(context.Background(), f.performance.URL+"/mcp",
		f.token(t, "user-42", "", "read:demographics"), logger)
	if err == nil {
		t.Fatal("expected handshake failure for missing scope")
	}
}

func TestAuditAttributionPerFlow(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		subject     string
		actor       string
		wantSubject string
		wantActor   string
	}{
		{"direct user token", "user-42", "", "user-42", ""},
		{"agent token", "agent-7", "", "agent-7", ""},
		{"delegated token", "user-42", "agent-7", "user-42", "agent-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.demoAudit.Count()
			c := f.connect(t, f.demographics.URL, f.token(t, tt.subject, tt.actor, "read:demographics"))

			var out dataset.PoolSearchResult
			err := c.CallToolInto(ctx, "search_patient_pools", map[string]any{"region": "Texas"}, &out)
			if err != nil {
				t.Fatalf("CallToolInto returned error: %v", err)
			}

			entries := f.demoAudit.Entries(ctx)
			if len(entries) != before+1 {
				t.Fatalf("audit entries = %d, want %d", len(entries), before+1)
			}
			latest := entries[0]
			if latest.Subject != tt.wantSubject || latest.Actor != tt.wantActor {
				t.Errorf("attribution = (%q, %q), want (%q, %q)",
					latest.Subject, latest.Actor, tt.wantSubject, tt.wantActor)
			}
			if latest.Tool != "search_patient_pools" || latest.Outcome != audit.OutcomeOK {
				t.Errorf("entry = %+v", latest)
			}
		})
	}
}
