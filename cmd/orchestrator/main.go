package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"github.com/trialworks/sitescout/internal/auth"
	"github.com/trialworks/sitescout/internal/flow"
	"github.com/trialworks/sitescout/internal/orchestrator"
)

const (
	defaultDemographicsURL = "http://localhost:4001/mcp"
	defaultPerformanceURL  = "http://localhost:4002/mcp"
)

var (
	flowName = flag.String("flow", "direct", "Delegation flow: direct, agent, or obo")
	query    = flag.String("query", "", "Site selection query (required)")
	debug    = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	if *query == "" {
		log.Fatal("-query is required")
	}

	_ = godotenv.Load()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	selectedFlow, err := flow.Parse(*flowName)
	if err != nil {
		log.Fatalf("Invalid flow: %v", err)
	}

	ctx := context.Background()
	selector, err := buildSelector(ctx, selectedFlow)
	if err != nil {
		log.Fatalf("Failed to configure flow %s: %v", selectedFlow, err)
	}

	cfg := orchestrator.Config{
		DemographicsURL: envOr("DEMOGRAPHICS_SERVER_URL", defaultDemographicsURL),
		PerformanceURL:  envOr("PERFORMANCE_SERVER_URL", defaultPerformanceURL),
	}

	o := orchestrator.New(cfg, selector, orchestrator.NewWeightedRanker(), logger)
	report, err := o.Run(ctx, *query)
	if err != nil {
		logger.Error("Run failed", "error", err)
		os.Exit(1)
	}

	fmt.Print(report.Render())
}

// buildSelector wires the token sources the selected flow needs from the
// environment. Direct and OBO flows read the user's token from USER_TOKEN;
// agent and OBO flows use the agent's OAuth client credentials.
func buildSelector(ctx context.Context, f flow.Flow) (*flow.Selector, error) {
	userStore := auth.NewTokenStore()
	if tok := os.Getenv("USER_TOKEN"); tok != "" {
		userStore.Save(tok)
	}
	direct := flow.StoreTokenSource(userStore)

	var agentSource, oboSource oauth2.TokenSource

	switch f {
	case flow.Agent:
		creds, err := agentCredentials()
		if err != nil {
			return nil, err
		}
		agentSource = creds.TokenSource(ctx)
	case flow.OBO:
		creds, err := agentCredentials()
		if err != nil {
			return nil, err
		}
		oboSource = flow.OBOTokenSource(ctx, flow.ExchangeConfig{
			TokenURL:     creds.TokenURL,
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Scopes:       creds.Scopes,
		}, direct)
	}

	return flow.NewSelector(f, direct, agentSource, oboSource), nil
}

func agentCredentials() (flow.AgentCredentials, error) {
	creds := flow.AgentCredentials{
		ClientID:     os.Getenv("AGENT_CLIENT_ID"),
		ClientSecret: os.Getenv("AGENT_CLIENT_SECRET"),
		TokenURL:     os.Getenv("TOKEN_URL"),
	}
	if scopes := os.Getenv("AGENT_SCOPES"); scopes != "" {
		creds.Scopes = strings.Fields(scopes)
	}
	if creds.ClientID == "" || creds.TokenURL == "" {
		return creds, fmt.Errorf("AGENT_CLIENT_ID and TOKEN_URL are required")
	}
	return creds, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
