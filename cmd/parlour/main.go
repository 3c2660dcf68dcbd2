package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/parlourcover/parlour/internal/interfaces/cli/consultant"
	"github.com/parlourcover/parlour/internal/interfaces/cli/jobs"
	"github.com/parlourcover/parlour/internal/interfaces/cli/migrate"
	"github.com/parlourcover/parlour/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parlour",
		Short: "Parlour - funeral cover membership administration",
		Long:  `Parlour manages funeral parlours, their plans, applicants and members, with an HTTP API, migrations and batch jobs.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		jobs.NewCommand(),
		consultant.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
