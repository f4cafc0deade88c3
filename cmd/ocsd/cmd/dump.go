/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ocsd-project/ocsd/pkg/ocsd"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Decode and print the live OCSD region",
	Long: `Dump maps the configured region, decodes the system header and every
device slot, and prints them along with a hex rendering of each record.

Examples:
  ocsd dump --config ocsd.yaml
  ocsd dump --raw`,
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

		raw, _ := cmd.Flags().GetBool("raw")

		hdr, err := cx.ReadHeader()
		if err != nil {
			return err
		}
		printHeader(cmd, hdr)
		if raw {
			printBytes(cmd, hdr.Encode())
		}

		for i := 0; i < cx.Slots(); i++ {
			d, err := cx.ReadDevice(i)
			if err != nil {
				return err
			}
			cmd.Println()
			printDevice(cmd, i, d)
			if raw {
				printBytes(cmd, d.Encode())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().Bool("raw", false, "Also print each record as hex bytes")
}

func printHeader(cmd *cobra.Command, h ocsd.SystemHeader) {
	cmd.Printf("system header (version %d, checksum %#08x)\n", h.Version, h.Checksum())
	cmd.Printf("  buffer_size:          %d\n", h.BufferSize)
	cmd.Printf("  max_option_cards:     %d\n", h.MaxOptionCards)
	cmd.Printf("  one_option_card_size: %d\n", h.OneOptionCardSize)
	cmd.Printf("  buffer_start_address: %#x\n", h.BufferStartAddress)
	cmd.Printf("  update_interval:      %d\n", h.UpdateInterval)
	cmd.Printf("  buffers_in_use:       %d\n", h.BuffersInUse)
}

func printDevice(cmd *cobra.Command, slot int, d ocsd.Device) {
	cmd.Printf("slot %d: device version %d, pci %d:%d, flags %#x\n",
		slot, d.Header.Version, d.Header.PCIBus, d.Header.PCIDevice, d.Header.FlagsCaps)
	for i, s := range d.Sensors {
		if s == (ocsd.Sensor{}) {
			cmd.Printf("  sensor %d: empty\n", i)
			continue
		}
		cmd.Printf("  sensor %d: type %d location %d status %#04x reading %d°C (caution %d°C, max continuous %d°C) updates %d checksum %#08x\n",
			i, s.Type, s.Location, uint16(s.Status), s.Reading.Degrees(),
			s.CautionThreshold.Degrees(), s.MaxContinuousThreshold.Degrees(),
			s.UpdateCount, s.Checksum(d.Header.PCIBus))
	}
}

// printBytes renders a record as hex, four-byte groups, sixteen bytes per
// line, matching the region's word alignment.
func printBytes(cmd *cobra.Command, data []byte) {
	for i, b := range data {
		switch {
		case i%16 == 0:
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("  %04x: ", i)
		case i%4 == 0:
			cmd.Print(" ")
		}
		cmd.Printf("%02x ", b)
	}
	cmd.Println()
}
