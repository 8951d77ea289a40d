package main

import (
	"os"

	"github.com/spf13/cobra"

	"coursegate/internal/interfaces/cli/migrate"
	"coursegate/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coursegate",
		Short: "Coursegate - entitlement reconciliation and playback token service",
		Long:  `Coursegate keeps course and membership entitlements in sync with payment provider events and issues signed playback tokens for gated video content.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
