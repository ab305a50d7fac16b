package cli

import (
	"testing"

	"github.com/retropix/retropix/pkg/errors"
	"github.com/retropix/retropix/pkg/pixelart"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
[defaults]
block_size = 10
colors = 32
palette = "nes"
dither = true
format = "gif"

[palettes]
ocean = ["#0b1b33", "#1d4e89", "#3f88c5", "#9fd8cb"]
`)

	cfg, err := parseConfig(data)
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}

	if cfg.Defaults.BlockSize != 10 {
		t.Errorf("BlockSize = %d, want 10", cfg.Defaults.BlockSize)
	}
	if cfg.Defaults.Colors != 32 {
		t.Errorf("Colors = %d, want 32", cfg.Defaults.Colors)
	}
	if cfg.Defaults.Palette != "nes" {
		t.Errorf("Palette = %q, want nes", cfg.Defaults.Palette)
	}
	if !cfg.Defaults.Dither {
		t.Error("Dither should be true")
	}
	if cfg.Defaults.Format != "gif" {
		t.Errorf("Format = %q, want gif", cfg.Defaults.Format)
	}

	colors, ok := cfg.userPalette("ocean")
	if !ok {
		t.Fatal("ocean palette missing")
	}
	want := pixelart.Color{R: 0x0b, G: 0x1b, B: 0x33}
	if colors[0] != want {
		t.Errorf("colors[0] = %v, want %v", colors[0], want)
	}
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := parseConfig(nil)
	if err != nil {
		t.Fatalf("empty config should parse: %v", err)
	}
	if len(cfg.Palettes) != 0 {
		t.Error("empty config should have no palettes")
	}
}

func TestParseConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed toml", `[defaults` + "\n"},
		{"builtin shadow", `[palettes]` + "\n" + `nes = ["#000000", "#ffffff"]`},
		{"adaptive shadow", `[palettes]` + "\n" + `adaptive = ["#000000", "#ffffff"]`},
		{"bad color", `[palettes]` + "\n" + `mine = ["#zzz", "#ffffff"]`},
		{"too few colors", `[palettes]` + "\n" + `mine = ["#ffffff"]`},
		{"bad name", `[palettes]` + "\n" + `"My Palette" = ["#000000", "#ffffff"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tt.data))
			if err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  pixelart.Color
	}{
		{"#000000", pixelart.Color{R: 0, G: 0, B: 0}},
		{"#ffffff", pixelart.Color{R: 255, G: 255, B: 255}},
		{"#1a2b3c", pixelart.Color{R: 0x1a, G: 0x2b, B: 0x3c}},
		{"#FFAA00", pixelart.Color{R: 0xff, G: 0xaa, B: 0x00}},
		{"#abc", pixelart.Color{R: 0xaa, G: 0xbb, B: 0xcc}},
	}
	for _, tt := range tests {
		got, err := parseHexColor(tt.input)
		if err != nil {
			t.Errorf("parseHexColor(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := parseHexColor("123456"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing # should be INVALID_CONFIG, got %v", err)
	}
}

func TestUserPaletteUnknown(t *testing.T) {
	cfg := Config{}
	if _, ok := cfg.userPalette("missing"); ok {
		t.Error("unknown palette should not resolve")
	}
}
