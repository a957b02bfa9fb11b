package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miftools/mif-go/mif"
	"github.com/miftools/mif-go/output"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <design.mif>",
	Short: "Export decoded channel planes as zstd-compressed masks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringP("dir", "d", ".", "Output directory")
	dumpCmd.Flags().IntP("layer", "l", 0, "Layer index")
	dumpCmd.Flags().IntP("variant", "n", 0, "Variant index supplying channel names")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	layer, _ := cmd.Flags().GetInt("layer")
	variantIndex, _ := cmd.Flags().GetInt("variant")

	f, err := mif.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	channels, err := f.LoadChannels(layer, variantIndex)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := output.WriteMasks(channels, dir); err != nil {
		return err
	}
	fmt.Printf("wrote %d masks to %s\n", len(channels), dir)
	return nil
}
