package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	applog "muciocar/internal/log"
	"muciocar/internal/repos"
	"muciocar/internal/validate"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage back-office users",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin user, or reset its password if the email exists",
	Example: `  muciocar admin create --email dono@muciocar.com.br --password 'Segr3do!'`,
	RunE:    runAdminCreate,
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")
	pass, _ := cmd.Flags().GetString("password")

	email, ok := validate.Email(email)
	if !ok {
		return errors.New("invalid email")
	}
	if !validate.Password(pass) {
		return errors.New("password must be 8-64 chars with upper, lower, digit and symbol")
	}
	if name, ok = validate.Name(name); !ok {
		return errors.New("invalid name")
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := repos.EnsureAdmin(db, uuid.NewString(), email, name, pass); err != nil {
		return err
	}
	applog.L().Info("admin.create", zap.String("email", email))
	fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready\n", email)
	return nil
}
