package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "evalctl",
	Short: "Lecturer evaluation service and administration tool",
	Long: `evalctl runs the lecturer evaluation API and administers its data,
database schema, configuration and admin tokens.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
