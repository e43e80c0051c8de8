package main

import (
	"fmt"

	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"
	"github.com/DarkZone24/inventory-monitoring-system/internal/service"

	"github.com/spf13/cobra"
)

var seedAdmin service.AdminSeed

// imsctl seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create default categories and the first admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootDB()
		if err != nil {
			return err
		}
		res, err := service.Seed(cmd.Context(),
			repository.NewUserRepository(db),
			repository.NewRoleRepository(db),
			repository.NewCategoryRepository(db),
			seedAdmin,
		)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "categories created: %d\n", res.CategoriesCreated)
		if res.AdminCreated {
			fmt.Fprintf(cmd.OutOrStdout(), "admin created: %s\n", seedAdmin.Email)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "admin already exists: %s\n", seedAdmin.Email)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedAdmin.Name, "name", "System Admin", "admin display name")
	seedCmd.Flags().StringVar(&seedAdmin.Email, "email", "admin@school.local", "admin login email")
	seedCmd.Flags().StringVar(&seedAdmin.Password, "password", "", "admin password (required)")
	_ = seedCmd.MarkFlagRequired("password")
}
