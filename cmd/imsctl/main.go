// Command imsctl runs database and account maintenance tasks for the
// inventory server.
package main

import (
	"fmt"
	"os"

	"github.com/DarkZone24/inventory-monitoring-system/internal/config"
	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "imsctl",
	Short:         "Inventory monitoring system admin CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(hashCmd)
}

// bootDB loads config and opens the database connection.
func bootDB() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	infra.SetupLogger(cfg)
	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
