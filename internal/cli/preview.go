package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/retropix/retropix/pkg/imageio"
	"github.com/retropix/retropix/pkg/pipeline"
	"github.com/retropix/retropix/pkg/pixelart"
)

// previewCommand creates the preview command, which processes an image and
// renders the result directly in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview <input>",
		Short: "Process an image and preview it in the terminal",
		Long: `Process an image and preview it in the terminal.

The result is drawn with ANSI half-block characters, two pixels per
character cell. Press r to toggle dithering and reprocess, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyConfigDefaults(cmd, cfg, &opts)
			resolveUserPalette(cfg, &opts)

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			opts.Logger = c.Logger

			m := previewModel{
				input:  args[0],
				opts:   opts,
				runner: runner,
				cols:   80,
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&opts.BlockSize, "block-size", "b", 8, "pixel block size")
	cmd.Flags().IntVarP(&opts.PaletteSize, "colors", "c", 16, "palette size (adaptive mode)")
	cmd.Flags().StringVarP(&opts.Palette, "palette", "p", pixelart.PaletteAdaptive, "palette name")
	cmd.Flags().BoolVar(&opts.NoBlur, "no-blur", false, "skip the pre-quantization blur")
	cmd.Flags().BoolVarP(&opts.Dither, "dither", "d", false, "apply Floyd-Steinberg dithering")
	cmd.Flags().BoolVarP(&opts.EdgeEnhance, "edge-enhance", "e", false, "sharpen after expansion")
	cmd.Flags().BoolVar(&opts.Outline, "outline", false, "darken edges for an outlined look")
	cmd.Flags().IntVar(&opts.OutlineThickness, "outline-thickness", 1, "outline thickness (1-5)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for adaptive mode (0 = random)")

	return cmd
}

// =============================================================================
// Bubbletea Model
// =============================================================================

type previewResultMsg struct {
	lines []string
	err   error
}

type previewModel struct {
	input  string
	opts   pipeline.Options
	runner *pipeline.Runner

	cols       int
	lines      []string
	err        error
	processing bool
}

func (m previewModel) Init() tea.Cmd {
	return m.process()
}

// process runs the pipeline off the update loop and renders the decoded
// result as half-block lines.
func (m previewModel) process() tea.Cmd {
	opts := m.opts
	input := m.input
	runner := m.runner
	cols := m.cols

	return func() tea.Msg {
		result, err := runner.Execute(context.Background(), input, opts)
		if err != nil {
			return previewResultMsg{err: err}
		}
		img, err := imageio.Decode(bytes.NewReader(result.Data))
		if err != nil {
			return previewResultMsg{err: err}
		}
		return previewResultMsg{lines: renderHalfBlock(imageio.ToImage(img), cols)}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 && msg.Width != m.cols {
			m.cols = msg.Width
			m.processing = true
			return m, m.process()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.opts.Dither = !m.opts.Dither
			m.processing = true
			return m, m.process()
		}
		return m, nil

	case previewResultMsg:
		m.processing = false
		m.err = msg.err
		if msg.err == nil {
			m.lines = msg.lines
		}
		return m, nil
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	dither := "off"
	if m.opts.Dither {
		dither = "on"
	}
	b.WriteString(StyleTitle.Render(m.input))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  palette=%s dither=%s", m.opts.Palette, dither)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
	case m.processing && len(m.lines) == 0:
		b.WriteString(StyleDim.Render("processing..."))
		b.WriteString("\n")
	default:
		for _, line := range m.lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("r toggle dither · q quit"))
	return b.String()
}

// =============================================================================
// Half-block Rendering
// =============================================================================

// renderHalfBlock converts an image to ANSI art using the lower-half block
// character (▄). For every 2 rows of pixels: background = top pixel color,
// foreground = bottom pixel color. The image is scaled to maxCols width
// preserving aspect ratio; nearest-neighbor scaling keeps blocks crisp.
func renderHalfBlock(img *image.NRGBA, maxCols int) []string {
	srcW := img.Rect.Dx()
	srcH := img.Rect.Dy()
	if srcW == 0 || srcH == 0 || maxCols <= 0 {
		return nil
	}

	targetW := srcW
	targetH := srcH
	if targetW > maxCols {
		targetH = targetH * maxCols / targetW
		targetW = maxCols
	}
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}

	scaled := img
	if targetW != srcW || targetH != srcH {
		dst := image.NewNRGBA(image.Rect(0, 0, targetW, targetH))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
		scaled = dst
	}

	var lines []string
	for y := 0; y < targetH; y += 2 {
		var b strings.Builder
		for x := 0; x < targetW; x++ {
			top := scaled.NRGBAAt(x, y)

			// Bottom pixel is black past the last row of odd-height images.
			var bot [3]uint8
			if y+1 < targetH {
				c := scaled.NRGBAAt(x, y+1)
				bot = [3]uint8{c.R, c.G, c.B}
			}

			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm▄",
				top.R, top.G, top.B, bot[0], bot[1], bot[2])
		}
		b.WriteString("\x1b[0m")
		lines = append(lines, b.String())
	}

	return lines
}
