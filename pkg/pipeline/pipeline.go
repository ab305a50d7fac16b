// Package pipeline provides the core processing pipeline for retropix.
//
// This package implements the complete decode → process → encode pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read the input image into an RGB buffer
//  2. Process: Run the pixel-art transformation (blur, block reduction,
//     quantization, dithering, expansion, sharpening, outlines)
//  3. Encode: Serialize the result in the requested output format
//
// Encoded results are cached by content hash, so re-running the same input
// with the same options is a single cache read.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    BlockSize:   8,
//	    PaletteSize: 16,
//	    Palette:     "adaptive",
//	    Format:      "png",
//	}
//	result, err := runner.Execute(ctx, "input.jpg", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.png", result.Data, 0644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/retropix/retropix/pkg/cache"
	"github.com/retropix/retropix/pkg/errors"
	"github.com/retropix/retropix/pkg/imageio"
	"github.com/retropix/retropix/pkg/pixelart"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is the default output format.
	DefaultFormat = "png"

	// DefaultPalette is the default palette mode.
	DefaultPalette = pixelart.PaletteAdaptive
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the processing pipeline.
// This struct supports JSON serialization for API requests.
//
// Out-of-range numeric values are clamped rather than rejected, matching the
// core processing semantics; only palette names and formats fail validation.
type Options struct {
	// Processing options
	BlockSize        int    `json:"block_size,omitempty"`
	PaletteSize      int    `json:"palette_size,omitempty"`
	Palette          string `json:"palette,omitempty"`
	NoBlur           bool   `json:"no_blur,omitempty"` // Skip pre-blur (default: false = blur)
	EdgeEnhance      bool   `json:"edge_enhance,omitempty"`
	Dither           bool   `json:"dither,omitempty"`
	Outline          bool   `json:"outline,omitempty"`
	OutlineThickness int    `json:"outline_thickness,omitempty"`
	Seed             int64  `json:"seed,omitempty"`

	// PaletteColors carries a user-defined palette resolved from config.
	// When set it overrides the built-in lookup for Palette.
	PaletteColors []pixelart.Color `json:"-"`

	// Output options
	Format string `json:"format,omitempty"`

	// Refresh bypasses the cache read (the result is still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the encoded output image.
	Data []byte

	// Width and Height are the output dimensions. Zero when the result was
	// served from cache without decoding.
	Width  int
	Height int

	// InputHash is the content hash of the raw input bytes.
	InputHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the run hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DecodeTime  time.Duration
	ProcessTime time.Duration
	EncodeTime  time.Duration
	InputBytes  int
	OutputBytes int
}

// CacheInfo tracks cache usage for a pipeline run.
type CacheInfo struct {
	ResultHit bool   // Whether the encoded result came from cache
	Key       string // The cache key used
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if err := errors.ValidatePaletteName(o.Palette); err != nil {
		return err
	}
	// Unknown built-in palettes fail here rather than deep in processing.
	// A user palette supplied through PaletteColors may carry any name.
	if len(o.PaletteColors) == 0 && !pixelart.ValidPalette(o.Palette) {
		return errors.New(errors.ErrCodeInvalidPalette, "unknown palette: %q", o.Palette)
	}

	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := errors.ValidateImageFormat(o.Format, imageio.Formats()); err != nil {
		return err
	}

	defaults := pixelart.DefaultParams()
	if o.BlockSize == 0 {
		o.BlockSize = defaults.BlockSize
	}
	if o.PaletteSize == 0 {
		o.PaletteSize = defaults.PaletteSize
	}
	if o.OutlineThickness == 0 {
		o.OutlineThickness = defaults.OutlineThickness
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ShouldBlur returns whether the pre-blur stage should run.
func (o *Options) ShouldBlur() bool {
	return !o.NoBlur
}

// Params converts the options to core processing parameters.
func (o *Options) Params() pixelart.Params {
	return pixelart.Params{
		BlockSize:        o.BlockSize,
		PaletteSize:      o.PaletteSize,
		PreBlur:          o.ShouldBlur(),
		EdgeEnhance:      o.EdgeEnhance,
		Dither:           o.Dither,
		Outline:          o.Outline,
		OutlineThickness: o.OutlineThickness,
		Palette:          o.Palette,
		PaletteColors:    o.PaletteColors,
		Seed:             o.Seed,
	}
}

// ResultKeyOpts returns cache key options for the encoded result.
// The seed participates only in adaptive mode; fixed-palette runs are
// deterministic regardless of seed and share entries.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	seed := o.Seed
	if o.Palette != pixelart.PaletteAdaptive {
		seed = 0
	}
	var paletteHash string
	if len(o.PaletteColors) > 0 {
		raw := make([]byte, 0, len(o.PaletteColors)*3)
		for _, c := range o.PaletteColors {
			raw = append(raw, c.R, c.G, c.B)
		}
		paletteHash = cache.Hash(raw)
	}
	return cache.ResultKeyOpts{
		BlockSize:        o.BlockSize,
		PaletteSize:      o.PaletteSize,
		Palette:          o.Palette,
		PreBlur:          o.ShouldBlur(),
		EdgeEnhance:      o.EdgeEnhance,
		Dither:           o.Dither,
		Outline:          o.Outline,
		OutlineThickness: o.OutlineThickness,
		Seed:             seed,
		Format:           o.Format,
		PaletteHash:      paletteHash,
	}
}
