package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDatabaseURL string
	flagEnvironment string
)

var rootCmd = &cobra.Command{
	Use:   "pingdeck-migrate",
	Short: "pingdeck-migrate applies the pingdeck database schema migrations.",
	Long: `pingdeck-migrate applies the fixed sequence of additive schema
migrations for the pingdeck database. Every step is idempotent, so the
command is safe to re-run after a partial failure.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "database connection string (overrides DATABASE_URL and pingdeck.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagEnvironment, "env", "e", "", "named environment from pingdeck.toml")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
