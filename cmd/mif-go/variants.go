package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miftools/mif-go/pipeline"
)

var variantsCmd = &cobra.Command{
	Use:   "variants <design.mif>",
	Short: "List the colorways of a design",
	Args:  cobra.ExactArgs(1),
	RunE:  runVariants,
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(cmd *cobra.Command, args []string) error {
	infos, err := pipeline.ListVariants(args[0])
	if err != nil {
		return err
	}
	for _, v := range infos {
		fmt.Printf("%2d  %-24s %2d channels", v.Index, v.Name, v.ChannelCount)
		if v.Description != "" {
			fmt.Printf("  %s", v.Description)
		}
		if len(v.Preview) > 0 {
			fmt.Printf("  (preview %d bytes)", len(v.Preview))
		}
		fmt.Println()
	}
	return nil
}
