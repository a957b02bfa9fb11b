package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/miftools/mif-go/compose"
	"github.com/miftools/mif-go/mif"
	"github.com/miftools/mif-go/output"
)

var renderCmd = &cobra.Command{
	Use:   "render <design.mif>",
	Short: "Render a variant preview to .png, .jpg or .qoi",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "Output image file (.png, .jpg, .qoi)")
	renderCmd.Flags().IntP("layer", "l", 0, "Layer index")
	renderCmd.Flags().IntP("variant", "n", 0, "Variant index")
	renderCmd.Flags().IntP("scale", "s", 1, "Downscale factor")
	renderCmd.Flags().Bool("additive", false, "Use the additive blend instead of the native one")
	renderCmd.Flags().Int("quality", 95, "JPEG quality (1-100)")
	renderCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	layer, _ := cmd.Flags().GetInt("layer")
	variantIndex, _ := cmd.Flags().GetInt("variant")
	scale, _ := cmd.Flags().GetInt("scale")
	additive, _ := cmd.Flags().GetBool("additive")
	quality, _ := cmd.Flags().GetInt("quality")

	logger := mif.NewLogger()

	logger.Step("open", filepath.Base(args[0]))
	f, err := mif.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	logger.Done(fmt.Sprintf("revision %d, %d variants, %d layers",
		f.Header.Version, len(f.Variants), len(f.Layers)))

	logger.Step("decode", fmt.Sprintf("layer %d, variant %d", layer, variantIndex))
	channels, err := f.LoadChannels(layer, variantIndex)
	if err != nil {
		return err
	}
	variant, err := f.Variant(variantIndex)
	if err != nil {
		return err
	}
	logger.Done(fmt.Sprintf("%d channels", len(channels)))

	mode := compose.BlendNative
	if additive {
		mode = compose.BlendAdditive
	}

	logger.Step("compose")
	img, err := compose.ComposeWithMode(channels, variant, scale, mode)
	if err != nil {
		return err
	}
	b := img.Bounds()
	logger.Done(fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))

	logger.Step("encode", filepath.Base(outputPath))
	if err := output.WriteImage(img, outputPath, quality); err != nil {
		return err
	}
	logger.Done("written")
	logger.Total()
	return nil
}
