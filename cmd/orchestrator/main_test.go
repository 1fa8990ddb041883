package main

import (
	"context"
	"testing"

	"github.com/trialworks/sitescout/internal/flow"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("DEMOGRAPHICS_SERVER_URL", "")
	if got := envOr("DEMOGRAPHICS_SERVER_URL", defaultDemographicsURL); got != defaultDemographicsURL {
		t.Errorf("envOr = %q, want fallback", got)
	}

	t.Setenv("DEMOGRAPHICS_SERVER_URL", "http://demo.internal:4001/mcp")
	if got := envOr("DEMOGRAPHICS_SERVER_URL", defaultDemographicsURL); got != "http://demo.internal:4001/mcp" {
		t.Errorf("envOr = %q, want the env value", got)
	}
}

func TestAgentCredentialsFromEnv(t *testing.T) {
	t.Setenv("AGENT_CLIENT_ID", "site-agent")
	t.Setenv("AGENT_CLIENT_SECRET", "secret")
	t.Setenv("TOKEN_URL", "https://idp.test/oauth2/token")
	t.Setenv("AGENT_SCOPES", "read:demographics read:performance")

	creds, err := agentCredentials()
	if err != nil {
		t.Fatalf("agentCredentials returned error: %v", err)
	}
	if creds.ClientID != "site-agent" || creds.TokenURL != "https://idp.test/oauth2/token" {
		t.Errorf("creds = %+v", creds)
	}
	if len(creds.Scopes) != 2 {
		t.Errorf("Scopes = %v, want two", creds.Scopes)
	}
}

func TestAgentCredentialsMissingEnv(t *testing.T) {
	t.Setenv("AGENT_CLIENT_ID", "")
	t.Setenv("TOKEN_URL", "")

	if _, err := agentCredentials(); err == nil {
		t.Fatal("expected error without AGENT_CLIENT_ID and TOKEN_URL")
	}
}

func TestBuildSelectorDirect(t *testing.T) {
	t.Setenv("USER_TOKEN", "user-token")

	sel, err := buildSelector(context.Background(), flow.Direct)
	if err != nil {
		t.Fatalf("buildSelector returned error: %v", err)
	}
	tok, err := sel.Token(context.Background())
	if err != nil {
		t.Fatalf("Token returned error: %v", err)
	}
	if tok != "user-token" {
		t.Errorf("Token = %q, want user-token", tok)
	}
}

func TestBuildSelectorDirectWithoutToken(t *testing.T) {
	t.Setenv("USER_TOKEN", "")

	sel, err := buildSelector(context.Background(), flow.Direct)
	if err != nil {
		t.Fatalf("buildSelector returned error: %v", err)
	}
	if _, err := sel.Token(context.Background()); err == nil {
		t.Fatal("expected error with no stored user token")
	}
}

func TestBuildSelectorAgentRequiresCredentials(t *testing.T) {
	t.Setenv("AGENT_CLIENT_ID", "")
	t.Setenv("TOKEN_URL", "")

	if _, err := buildSelector(context.Background(), flow.Agent); err == nil {
		t.Fatal("expected error without agent credentials")
	}
}
