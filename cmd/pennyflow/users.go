package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollis/pennyflow/internal/auth"
	"github.com/hollis/pennyflow/internal/cli"
	"github.com/hollis/pennyflow/internal/config"
	"github.com/hollis/pennyflow/internal/engine"
	"github.com/hollis/pennyflow/internal/rules"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage dashboard users",
	}

	cmd.AddCommand(addUserCmd())

	return cmd
}

func addUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user with the default category set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := store.CreateUser(ctx, email, hash)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			eng := engine.New(store, rules.NewClassifier(rules.DefaultRules()))
			mapping, err := eng.EnsureDefaultCategories(ctx, user.ID)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("created user %s with %d categories", user.Email, len(mapping))))
			return nil
		},
	}

	cmd.Flags().String("email", "", "email address for the new user")
	cmd.Flags().String("password", "", "password for the new user (min 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
