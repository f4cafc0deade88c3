/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ocsd-project/ocsd/pkg/client"
	"github.com/ocsd-project/ocsd/pkg/config"
	"github.com/ocsd-project/ocsd/pkg/mmio"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ocsd",
	Short: "OCSD option card sensor data tool",
	Long: `ocsd reads and writes the shared OCSD memory region that server
management firmware polls for option card thermal sensors.

The region's physical base address is platform-specific and must be set in
the configuration file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		// Store in command context
		cmd.SetContext(context.WithValue(cmd.Context(), "config", cfg))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "ocsd.yaml", "Path to the configuration file")
}

// configFromContext pulls the loaded configuration back out of the command
// context.
func configFromContext(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value("config").(*config.Config)
	if !ok {
		return nil, fmt.Errorf("config not found in context")
	}
	return cfg, nil
}

// openBuffer maps the configured region through /dev/mem (or the configured
// override path).
func openBuffer(cfg *config.Config) (*client.Context, error) {
	addr, err := cfg.BaseAddr()
	if err != nil {
		return nil, err
	}

	// An empty Path falls back to /dev/mem inside the mapper.
	mapper := &mmio.DevMem{Path: cfg.MemPath}
	return client.Open(mapper, addr)
}
