// Package main - Entry point for the tradecalc API server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httpadapter "tradecalc/adapters/http"
	"tradecalc/core/calculator"
	"tradecalc/internal/config"
	"tradecalc/internal/logging"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgFile := flag.String("config", config.DefaultPath(), "Config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(*cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging.WithDefaultLevel("info")); err != nil {
		return err
	}
	defer logging.Sync()

	settings := httpadapter.FromSettings(cfg, version)
	if *addr != "" {
		settings.Address = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("tradecalc server starting",
		zap.String("version", version),
		zap.String("address", settings.Address),
	)
	return httpadapter.New(calculator.Default(), settings, logging.Named("http")).ListenAndServe(ctx)
}
