package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/templui/goaltracker/cmd/do/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "do",
		Short:        "Operations tools for the goal tracker",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.ExportCmd())
	rootCmd.AddCommand(cmd.ResetCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
