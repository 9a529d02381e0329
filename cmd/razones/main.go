package main

import (
	"os"

	"github.com/spf13/cobra"

	"razones/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "razones",
		Short: "Razones - legal notification document service",
		Long:  `Razones generates collection notification documents from client workbooks and reconciles immediate payment orders.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
