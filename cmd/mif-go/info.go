package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miftools/mif-go/pipeline"
)

var infoCmd = &cobra.Command{
	Use:   "info <design.mif>",
	Short: "Print design metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := pipeline.Open(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Design:   %s\n", info.DesignName)
	fmt.Printf("File:     %s\n", info.FileName)
	fmt.Printf("Type:     %s\n", info.DesignType)
	fmt.Printf("Revision: %d\n", info.Version)
	fmt.Printf("Variants: %d (active %d)\n", info.VariantCount, info.ActiveVariant)
	fmt.Printf("Layers:   %d\n", info.LayerCount)
	for i, p := range info.Parameters {
		fmt.Printf("Param %2d: %s\n", i, p)
	}
	return nil
}
