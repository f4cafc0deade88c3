/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ocsd-project/ocsd/pkg/reporter"
	"github.com/ocsd-project/ocsd/pkg/state"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Continuously write configured devices into the region",
	Long: `Report writes every device from the configuration file into its slot
on each interval, bumping sensor update counters so management firmware keeps
treating the sensors as alive. Counters persist across restarts.

Runs until interrupted.`,
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

		st, err := state.Open(cfg.StateDir)
		if err != nil {
			return err
		}
		defer st.Close()

		r, err := reporter.New(cx, st, cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return r.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
