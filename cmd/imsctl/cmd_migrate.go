package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database schema migrations",
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

func bootMigrator() (*infra.Migrator, error) {
	cfg, db, err := bootDB()
	if err != nil {
		return nil, err
	}
	return infra.NewMigrator(db, cfg.DBDriver)
}

// imsctl migrate up
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := bootMigrator()
		if err != nil {
			return err
		}
		return m.Up(cmd.Context())
	},
}

// imsctl migrate down
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := bootMigrator()
		if err != nil {
			return err
		}
		return m.Down(cmd.Context())
	},
}

// imsctl migrate status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := bootMigrator()
		if err != nil {
			return err
		}
		states, err := m.Status(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
		for _, s := range states {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
		}
		return tw.Flush()
	},
}
