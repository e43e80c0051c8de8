package main

import (
	"fmt"

	"github.com/DarkZone24/inventory-monitoring-system/internal/service"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// imsctl hash <password>
var hashCmd = &cobra.Command{
	Use:   "hash <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := bcrypt.GenerateFromPassword([]byte(args[0]), service.BcryptCost)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(h))
		return nil
	},
}
