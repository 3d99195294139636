package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/statekit/config"
)

// validateCmd validates a definitions file without starting the demo.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a store definitions file",
	Long: `Validate a statekit store definitions file without starting the demo.

This command parses the YAML and validates all fields. It's useful for
CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Definitions are valid
  1 - Definitions are invalid (error details printed to stderr)

Example:
  statekit validate -c stores.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to store definitions file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Definitions are valid!\n")
	fmt.Printf("  Port:   %d\n", cfg.Port)
	fmt.Printf("  Stores: %d\n", len(cfg.Stores))
	for _, sc := range cfg.Stores {
		fmt.Printf("    - %s (%d initial keys)\n", sc.Name, len(sc.Initial))
	}

	return nil
}
