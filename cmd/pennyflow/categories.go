package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hollis/pennyflow/internal/cli"
	"github.com/hollis/pennyflow/internal/config"
	"github.com/hollis/pennyflow/internal/engine"
	"github.com/hollis/pennyflow/internal/rules"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage spending categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(provisionCategoriesCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			email, _ := cmd.Flags().GetString("user")

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

			categories, err := store.GetCategories(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'pennyflow categories provision' to create the defaults."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, cli.TableHeaderStyle.Render("ID")+"\t"+
				cli.TableHeaderStyle.Render("ICON")+"\t"+
				cli.TableHeaderStyle.Render("NAME"))
			for _, cat := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\n", cat.ID, cat.Icon, cat.Name)
			}

			return nil
		},
	}

	cmd.Flags().String("user", "", "email of the user whose categories to list")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func provisionCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the default category set for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			email, _ := cmd.Flags().GetString("user")

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
			mapping, err := eng.EnsureDefaultCategories(ctx, userID)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d categories provisioned", len(mapping))))
			return nil
		},
	}

	cmd.Flags().String("user", "", "email of the user to provision categories for")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
