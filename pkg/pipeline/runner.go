package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/retropix/retropix/pkg/cache"
	"github.com/retropix/retropix/pkg/errors"
	"github.com/retropix/retropix/pkg/imageio"
	"github.com/retropix/retropix/pkg/observability"
	"github.com/retropix/retropix/pkg/pixelart"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute reads the input file and runs the complete pipeline.
func (r *Runner) Execute(ctx context.Context, inputPath string, opts Options) (*Result, error) {
	if err := errors.ValidateFilePath(inputPath); err != nil {
		return nil, err
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file not found: %s", inputPath)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to read %s", inputPath)
	}

	return r.ExecuteBytes(ctx, input, opts)
}

// ExecuteBytes runs the complete decode → process → encode pipeline on raw
// input bytes, serving the encoded result from cache when possible.
func (r *Runner) ExecuteBytes(ctx context.Context, input []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	inputHash := cache.Hash(input)
	key := r.Keyer.ResultKey(inputHash, opts.ResultKeyOpts())

	result := &Result{
		InputHash: inputHash,
		CacheInfo: CacheInfo{Key: key},
	}
	result.Stats.InputBytes = len(input)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "result")
			opts.Logger.Debug("cache hit", "key", key, "bytes", len(data))
			result.Data = data
			result.Stats.OutputBytes = len(data)
			result.CacheInfo.ResultHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, inputHash)
	img, err := imageio.Decode(bytes.NewReader(input))
	result.Stats.DecodeTime = time.Since(decodeStart)
	observability.Pipeline().OnDecodeComplete(ctx, inputHash, img.Width, img.Height, result.Stats.DecodeTime, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("decoded input",
		"width", img.Width,
		"height", img.Height,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Process
	processStart := time.Now()
	observability.Pipeline().OnProcessStart(ctx, img.Width, img.Height)
	out := pixelart.Process(img, opts.Params())
	result.Stats.ProcessTime = time.Since(processStart)

	var processErr error
	if out.Empty() {
		processErr = errors.New(errors.ErrCodeEmptyResult, "processing produced no output")
	}
	observability.Pipeline().OnProcessComplete(ctx, img.Width, img.Height, result.Stats.ProcessTime, processErr)
	if processErr != nil {
		return nil, processErr
	}
	result.Width = out.Width
	result.Height = out.Height

	opts.Logger.Info("processed image",
		"block_size", opts.BlockSize,
		"palette", opts.Palette,
		"duration", result.Stats.ProcessTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	observability.Pipeline().OnEncodeStart(ctx, opts.Format)
	var buf bytes.Buffer
	err = imageio.Encode(&buf, out, opts.Format)
	result.Stats.EncodeTime = time.Since(encodeStart)
	observability.Pipeline().OnEncodeComplete(ctx, opts.Format, buf.Len(), result.Stats.EncodeTime, err)
	if err != nil {
		return nil, err
	}
	result.Data = buf.Bytes()
	result.Stats.OutputBytes = buf.Len()

	opts.Logger.Info("encoded output",
		"format", opts.Format,
		"bytes", buf.Len(),
		"duration", result.Stats.EncodeTime)

	// Cache the encoded result
	if err := r.Cache.Set(ctx, key, result.Data, cache.ResultTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "result", len(result.Data))
	}

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
