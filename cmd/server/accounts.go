package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"schoolsite-backend-go/internal/config"
	"schoolsite-backend-go/internal/db"
	"schoolsite-backend-go/internal/services"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a password hash suitable for the users table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := services.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var adminOpts struct {
	username string
	password string
	fullName string
	email    string
	role     string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrative account unless the username is taken",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(adminOpts.username) == "" || len(adminOpts.password) < 6 {
			return errors.New("--username and a --password of at least 6 characters are required")
		}
		if !services.IsAdminRole(adminOpts.role) {
			return fmt.Errorf("--role must be one of %s", strings.Join(services.AdminRoles, ", "))
		}
		cfg := config.Load()
		database, err := db.Open(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		defer database.Close()

		roles := services.NewRoles(database)
		if err := roles.EnsureDefaults(cmd.Context()); err != nil {
			return err
		}
		roleID, err := roles.IDByName(cmd.Context(), adminOpts.role)
		if err != nil {
			return err
		}
		fullName := adminOpts.fullName
		if fullName == "" {
			fullName = adminOpts.username
		}
		var email *string
		if adminOpts.email != "" {
			email = &adminOpts.email
		}
		account, err := services.NewAccounts(database).Create(cmd.Context(), services.AccountInput{
			Username: adminOpts.username,
			Email:    email,
			Password: adminOpts.password,
			FullName: fullName,
			RoleID:   roleID,
		})
		if services.IsStatus(err, 409) {
			fmt.Fprintf(cmd.OutOrStdout(), "account %q already exists\n", adminOpts.username)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s account %q (id %d)\n", account.RoleName(), account.Username, account.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(createAdminCmd)
	flags := createAdminCmd.Flags()
	flags.StringVar(&adminOpts.username, "username", "", "login name")
	flags.StringVar(&adminOpts.password, "password", "", "initial password")
	flags.StringVar(&adminOpts.fullName, "full-name", "", "display name (defaults to the username)")
	flags.StringVar(&adminOpts.email, "email", "", "optional email address")
	flags.StringVar(&adminOpts.role, "role", services.RoleAdmin, "admin or superadmin")
}
