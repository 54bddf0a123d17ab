package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hollis/pennyflow/internal/auth"
	"github.com/hollis/pennyflow/internal/config"
	"github.com/hollis/pennyflow/internal/engine"
	"github.com/hollis/pennyflow/internal/report"
	"github.com/hollis/pennyflow/internal/rules"
	"github.com/hollis/pennyflow/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API server",
		Long: `Start the HTTP server that backs the dashboard: authentication,
accounts, transactions, categorization, budgets, goals, and reports.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	secret, err := cfg.RequireJWTSecret()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	authn, err := auth.NewAuthenticator(secret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	classifier := rules.NewClassifier(rules.DefaultRules())
	eng := engine.New(store, classifier)
	reports := report.NewGenerator(store)

	srv := server.New(store, eng, reports, authn, nil)
	if err := srv.Run(ctx, cfg.ListenAddr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
