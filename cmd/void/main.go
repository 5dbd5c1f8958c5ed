package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/voidlabs/void/internal/interfaces/cli/migrate"
	"github.com/voidlabs/void/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "void",
		Short: "Void - anonymous secret exchange",
		Long:  `Void runs the anonymous secret exchange API server and its database migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
