// Package cli holds the airops command tree.
package cli

import (
	"fmt"

	"github.com/Eursukkul/airline-ops/config"
	"github.com/Eursukkul/airline-ops/pkg/database"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RootCmd returns the airops command with every subcommand attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "airops",
		Short:         "Airline operations backend",
		Long:          "airops serves flight search, ticketing, baggage handling and invoices over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(MigrateCmd())
	rootCmd.AddCommand(SeedCmd())
	return rootCmd
}

func openDB(cfg *config.Config, log logger.Logger) (*gorm.DB, error) {
	dialector, err := cfg.Dialector()
	if err != nil {
		return nil, err
	}
	db, err := database.Open(dialector, database.DefaultPool)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	log.Info("database ready", "driver", cfg.DBDriver)
	return db, nil
}
