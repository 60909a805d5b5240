package main

import (
	"fmt"

	"github.com/spf13/cobra"

	applog "muciocar/internal/log"
	"muciocar/internal/repos"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and seed data, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		applog.L().Info("migrate.done")
		return nil
	},
}
