package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hollis/pennyflow/internal/cli"
	"github.com/hollis/pennyflow/internal/config"
	"github.com/hollis/pennyflow/internal/engine"
	"github.com/hollis/pennyflow/internal/importer"
	"github.com/hollis/pennyflow/internal/model"
	"github.com/hollis/pennyflow/internal/rules"
	"github.com/hollis/pennyflow/internal/service"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import bank statements (CSV, OFX, QFX)",
		Long: `Parse one or more statement files, categorize the transactions with
the rule engine, and save them. Duplicate transactions are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("user", "", "email of the user to import for")
	cmd.Flags().String("account", "", "account ID to attach transactions to")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	email, _ := cmd.Flags().GetString("user")
	accountID, _ := cmd.Flags().GetString("account")

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

	eng := engine.New(store, rules.NewClassifier(rules.DefaultRules()))

	bar := progressbar.NewOptions(len(args),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing statements..."),
	)

	totalParsed, totalImported, totalSuggested := 0, 0, 0
	for _, path := range args {
		parsed, imported, suggested, fileErr := importFile(ctx, store, eng, path, userID, accountID)
		if fileErr != nil {
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("failed to import %s: %w", path, fileErr)
		}
		totalParsed += parsed
		totalImported += imported
		totalSuggested += suggested
		_ = bar.Add(1)
	}
	fmt.Fprintln(os.Stderr)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"imported %d of %d transactions (%d categorized, %d duplicates skipped)",
		totalImported, totalParsed, totalSuggested, totalParsed-totalImported)))
	return nil
}

func importFile(ctx context.Context, store service.Storage, eng *engine.Engine, path, userID, accountID string) (parsed, imported, suggested int, err error) {
	file, err := os.Open(path) // #nosec G304 -- user-supplied statement path
	if err != nil {
		return 0, 0, 0, err
	}
	defer func() { _ = file.Close() }()

	var txns []model.Transaction
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		txns, err = importer.NewOFXParser().Parse(ctx, file, userID, accountID)
	case ".csv":
		txns, err = importer.NewCSVParser().Parse(ctx, file, userID, accountID)
	default:
		err = fmt.Errorf("unsupported statement format %q", filepath.Ext(path))
	}
	if err != nil {
		return 0, 0, 0, err
	}
	if len(txns) == 0 {
		return 0, 0, 0, nil
	}

	suggested, err = eng.ClassifyBatch(ctx, userID, txns)
	if err != nil {
		return 0, 0, 0, err
	}

	imported, err = store.SaveTransactions(ctx, txns)
	if err != nil {
		return 0, 0, 0, err
	}

	return len(txns), imported, suggested, nil
}
