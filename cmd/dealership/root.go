package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the dealership CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dealership",
		Short: "CSE Motors inventory site",
		Long: `dealership serves the CSE Motors inventory site: public vehicle pages,
customer accounts and the employee inventory management pages.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
