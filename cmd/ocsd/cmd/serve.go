/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ocsd-project/ocsd/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve decoded telemetry over HTTP",
	Long: `Serve maps the configured region read-only from this process's point
of view and exposes it as a JSON API plus Prometheus metrics.

Examples:
  ocsd serve --config ocsd.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configFromContext(cmd)
		if err != nil {
			return err
		}

		cx, err := openBuffer(cfg)
		if err != nil {
			return err
		}
		defer cx.Close()

		return api.StartServer(cx, api.ServerConfig{
			Listen: cfg.Listen,
			APIKey: cfg.APIKey,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
