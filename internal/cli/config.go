package cli

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/retropix/retropix/pkg/errors"
	"github.com/retropix/retropix/pkg/pixelart"
)

// Config holds user configuration loaded from ~/.config/retropix/config.toml.
//
// Example:
//
//	[defaults]
//	block_size = 10
//	colors = 32
//	palette = "adaptive"
//	dither = true
//	format = "png"
//
//	[palettes]
//	ocean = ["#0b1b33", "#1d4e89", "#3f88c5", "#9fd8cb"]
type Config struct {
	Defaults ConfigDefaults      `toml:"defaults"`
	Palettes map[string][]string `toml:"palettes"`
}

// ConfigDefaults mirrors the process command's flags. Zero values mean
// "not set"; explicit flags always win over config values.
type ConfigDefaults struct {
	BlockSize        int    `toml:"block_size"`
	Colors           int    `toml:"colors"`
	Palette          string `toml:"palette"`
	NoBlur           bool   `toml:"no_blur"`
	Dither           bool   `toml:"dither"`
	EdgeEnhance      bool   `toml:"edge_enhance"`
	Outline          bool   `toml:"outline"`
	OutlineThickness int    `toml:"outline_thickness"`
	Format           string `toml:"format"`
}

// loadConfig reads the user config file. A missing file yields an empty
// config; a malformed file is an error.
func loadConfig() (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, nil
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to read config")
	}
	return parseConfig(data)
}

// parseConfig decodes and validates TOML config data.
func parseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "malformed config")
	}

	for name, colors := range cfg.Palettes {
		if err := errors.ValidatePaletteName(name); err != nil {
			return Config{}, err
		}
		// Built-in palettes cannot be redefined.
		if pixelart.ValidPalette(name) {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig,
				"palette %q shadows a built-in palette", name)
		}
		if len(colors) < pixelart.MinPaletteSize {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig,
				"palette %q needs at least %d colors", name, pixelart.MinPaletteSize)
		}
		for _, c := range colors {
			if err := errors.ValidateHexColor(c); err != nil {
				return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err,
					"palette %q", name)
			}
		}
	}

	return cfg, nil
}

// userPalette resolves a named user palette to colors.
func (c Config) userPalette(name string) ([]pixelart.Color, bool) {
	hexes, ok := c.Palettes[name]
	if !ok {
		return nil, false
	}
	colors := make([]pixelart.Color, len(hexes))
	for i, h := range hexes {
		colors[i], _ = parseHexColor(h)
	}
	return colors, true
}

// parseHexColor parses "#RGB" or "#RRGGBB" into a color.
func parseHexColor(s string) (pixelart.Color, error) {
	if err := errors.ValidateHexColor(s); err != nil {
		return pixelart.Color{}, err
	}
	hex := s[1:]
	if len(hex) == 3 {
		// #abc expands to #aabbcc
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return pixelart.Color{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid hex color %q", s)
	}
	return pixelart.Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}
