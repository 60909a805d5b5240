package main

import (
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata" // business timezone must resolve on hosts without zoneinfo

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"muciocar/internal/config"
	applog "muciocar/internal/log"
)

var cfg config.Config

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "muciocar",
	Short: "Mucio Car website, booking flow and back-office",
	Long: `muciocar serves the Mucio Car detailing site: service pages, the
appointment booking form with WhatsApp handoff, client testimonials and the
admin back-office.

Configuration comes from the environment (and an optional .env file).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if _, err := time.LoadLocation(cfg.BusinessTZ); err != nil {
			applog.L().Warn("config.tz.fallback_utc", zap.String("tz", cfg.BusinessTZ), zap.Error(err))
		}
		// Optional file logging
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				applog.L().Warn("log.file.open.fail", zap.String("path", cfg.LogFile), zap.Error(err))
			} else {
				applog.SetOutput(io.MultiWriter(os.Stdout, f))
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		applog.Sync()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, adminCmd)
	adminCmd.AddCommand(adminCreateCmd)

	adminCreateCmd.Flags().String("email", "", "admin email (required)")
	adminCreateCmd.Flags().String("name", "Administrador", "display name")
	adminCreateCmd.Flags().String("password", "", "password: 8-64 chars with upper, lower, digit and symbol (required)")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
