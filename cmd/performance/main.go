package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/trialworks/sitescout/internal/audit"
	"github.com/trialworks/sitescout/internal/auth"
	"github.com/trialworks/sitescout/internal/dataset"
	"github.com/trialworks/sitescout/internal/performance"
	"github.com/trialworks/sitescout/internal/toolserver"
)

const (
	defaultPort = "4002"
	version     = "0.1.0"
)

var (
	showVersion = flag.Bool("version", false, "Print version and exit")
	debug       = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", performance.ServerName, version)
		os.Exit(0)
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

	cfg, err := toolserver.LoadEnv(defaultPort)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	verifier, err := auth.NewJWKSVerifier(ctx, cfg.JWKSURL, cfg.Issuer, cfg.Audience)
	if err != nil {
		log.Fatalf("Failed to initialize token verifier: %v", err)
	}

	auditLog := audit.NewLogger(audit.NewMemoryStore(), logger)
	handlers := performance.NewHandlers(dataset.NewPerformanceStore(), auditLog)

	srv := toolserver.New(toolserver.Config{
		Name:          performance.ServerName,
		Version:       version,
		RequiredScope: performance.Scope,
	}, verifier, auditLog, handlers.Tools(), logger)

	logger.Info("Starting site-performance tool server",
		"version", version,
		"port", cfg.Port,
		"issuer", cfg.Issuer,
		"required_scope", performance.Scope,
	)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		logger.Info("Received shutdown signal")
		cancel()
	}()

	if err := srv.ListenAndServe(ctx, ":"+cfg.Port); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
