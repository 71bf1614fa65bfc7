package main

import (
	"os"

	"github.com/mealpath/mealpath/cmd/do/cmd"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "do",
		Short:         "Operational tools for mealpath",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.GoalsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
