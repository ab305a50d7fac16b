package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retropix/retropix/pkg/pipeline"
	"github.com/retropix/retropix/pkg/pixelart"
)

// processCommand creates the process command, the main entry point for
// converting an image into pixel art.
func (c *CLI) processCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "process <input>",
		Short: "Convert an image into pixel art",
		Long: `Convert an image into pixel art.

The input is blurred, reduced to blocks, quantized against a palette
(adaptive k-means by default, or a classic hardware palette), optionally
dithered, expanded back to full size, and optionally sharpened and outlined.

Results are cached locally, so re-running the same input with the same
settings is instant. Defaults can be set in ~/.config/retropix/config.toml,
which can also define custom palettes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyConfigDefaults(cmd, cfg, &opts)
			resolveUserPalette(cfg, &opts)
			return c.runProcess(cmd.Context(), args[0], output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>-pixel.<format>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached result exists")

	cmd.Flags().IntVarP(&opts.BlockSize, "block-size", "b", 8, "pixel block size")
	cmd.Flags().IntVarP(&opts.PaletteSize, "colors", "c", 16, "palette size (adaptive mode)")
	cmd.Flags().StringVarP(&opts.Palette, "palette", "p", pixelart.PaletteAdaptive,
		"palette: adaptive, nes, gameboy, gameboy-pocket, pico8, cga, ega, c64, or a config palette")
	cmd.Flags().BoolVar(&opts.NoBlur, "no-blur", false, "skip the pre-quantization blur")
	cmd.Flags().BoolVarP(&opts.Dither, "dither", "d", false, "apply Floyd-Steinberg dithering")
	cmd.Flags().BoolVarP(&opts.EdgeEnhance, "edge-enhance", "e", false, "sharpen after expansion")
	cmd.Flags().BoolVar(&opts.Outline, "outline", false, "darken edges for an outlined look")
	cmd.Flags().IntVar(&opts.OutlineThickness, "outline-thickness", 1, "outline thickness (1-5)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for adaptive mode (0 = random)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "png", "output format: png, jpeg, gif, bmp, tiff")

	return cmd
}

// applyConfigDefaults overlays config values onto options for every flag the
// user did not set explicitly. Explicit flags always win.
func applyConfigDefaults(cmd *cobra.Command, cfg Config, opts *pipeline.Options) {
	d := cfg.Defaults
	set := cmd.Flags().Changed

	if d.BlockSize != 0 && !set("block-size") {
		opts.BlockSize = d.BlockSize
	}
	if d.Colors != 0 && !set("colors") {
		opts.PaletteSize = d.Colors
	}
	if d.Palette != "" && !set("palette") {
		opts.Palette = d.Palette
	}
	if d.NoBlur && !set("no-blur") {
		opts.NoBlur = true
	}
	if d.Dither && !set("dither") {
		opts.Dither = true
	}
	if d.EdgeEnhance && !set("edge-enhance") {
		opts.EdgeEnhance = true
	}
	if d.Outline && !set("outline") {
		opts.Outline = true
	}
	if d.OutlineThickness != 0 && !set("outline-thickness") {
		opts.OutlineThickness = d.OutlineThickness
	}
	if d.Format != "" && !set("format") {
		opts.Format = d.Format
	}
}

// resolveUserPalette swaps in user-defined palette colors when the selected
// palette name is not a built-in.
func resolveUserPalette(cfg Config, opts *pipeline.Options) {
	if pixelart.ValidPalette(opts.Palette) {
		return
	}
	if colors, ok := cfg.userPalette(opts.Palette); ok {
		opts.PaletteColors = colors
	}
}

// runProcess executes the pipeline and writes the output file.
func (c *CLI) runProcess(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if output == "" {
		output = defaultOutputPath(input, opts.Format)
	}

	p := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Processing %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Processing failed")
		return err
	}
	spinner.Stop()

	if err := os.WriteFile(output, result.Data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	p.done("processing complete")

	printSuccess("Processed %s", input)
	printFile(output)
	printStats(result.Width, result.Height, result.Stats.OutputBytes, result.CacheInfo.ResultHit)
	printNextStep("Preview in the terminal", fmt.Sprintf("retropix preview %s", input))
	return nil
}
