package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration attributes and their sources",
	Long: `Show configuration attributes and their sources.

The values displayed by this command reflect the current state of the
configuration sources, i.e. the environment variables and config file. A
running server picks up file changes for rating bounds, list limits and the
admin token secret; other attributes need a restart.

Config file location: /etc/lecture-eval/eval.yml (or EVAL_CONFIG_PATH)

Example:
  evalctl configuration show
  evalctl configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		if err := showConfiguration(os.Stdout, cfg, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

var configurationCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration",
	Long: `Load the configuration file and environment and validate the result.

Example:
  evalctl configuration check`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Config file: %s\n", cfg.ConfigFilePath())
		fmt.Println("Configuration is valid.")
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationCmd.AddCommand(configurationCheckCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showConfiguration(w io.Writer, cfg *config.EvalConfig, output string) error {
	switch output {
	case "json":
		jsonOutput, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, jsonOutput)
		return err
	case "text", "":
		_, err := fmt.Fprint(w, cfg.FormatText())
		return err
	}
	return fmt.Errorf("unknown output format %q", output)
}
