package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollis/pennyflow/internal/cli"
	"github.com/hollis/pennyflow/internal/config"
	"github.com/hollis/pennyflow/internal/export"
	"github.com/hollis/pennyflow/internal/service"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's transactions to an XLSX workbook",
		RunE:  runExport,
	}

	cmd.Flags().String("user", "", "email of the user to export")
	cmd.Flags().String("output", "transactions.xlsx", "output file path")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	email, _ := cmd.Flags().GetString("user")
	output, _ := cmd.Flags().GetString("output")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	userID, err := resolveUser(ctx, store, email)
	if err != nil {
		return err
	}

	txns, err := store.GetTransactions(ctx, userID, service.TransactionFilter{})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	categories, err := store.GetCategories(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	names := make(map[int64]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	file, err := os.Create(output) // #nosec G304 -- user-supplied output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer func() { _ = file.Close() }()

	if err := export.WriteWorkbook(file, txns, names); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("exported %d transactions to %s", len(txns), output)))
	return nil
}
