package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/retropix/retropix/pkg/pixelart"
)

// maxSwatchCells caps how many colors a palette row shows.
const maxSwatchCells = 16

// palettesCommand creates the palettes listing command.
func (c *CLI) palettesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List available palettes",
		Long: `List available palettes.

Shows the built-in hardware palettes plus any custom palettes defined in
~/.config/retropix/config.toml. Use a palette with:

  retropix process photo.jpg --palette nes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			nameStyle := lipgloss.NewStyle().Foreground(colorWhite).Width(18)
			countStyle := StyleDim.Width(12)

			fmt.Println(StyleTitle.Render("Built-in palettes"))
			printDetail("%s", "adaptive - derives a palette from each image (k-means in Lab space)")
			for _, name := range pixelart.PaletteNames() {
				colors, _ := pixelart.PaletteColors(name)
				fmt.Println("  " +
					nameStyle.Render(name) +
					countStyle.Render(fmt.Sprintf("%d colors", len(colors))) +
					renderSwatches(colors, maxSwatchCells))
			}

			if len(cfg.Palettes) == 0 {
				return nil
			}

			printNewline()
			fmt.Println(StyleTitle.Render("Custom palettes"))
			names := make([]string, 0, len(cfg.Palettes))
			for name := range cfg.Palettes {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				colors, _ := cfg.userPalette(name)
				fmt.Println("  " +
					nameStyle.Render(name) +
					countStyle.Render(fmt.Sprintf("%d colors", len(colors))) +
					renderSwatches(colors, maxSwatchCells))
			}
			return nil
		},
	}
}
