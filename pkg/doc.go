// Package pkg provides the core libraries for retropix pixel-art conversion.
//
// # Overview
//
// Retropix turns photographs and other raster images into pixel art with
// retro hardware palettes. The pkg directory is organized into five areas:
//
//  1. [pixelart] - Domain logic (blur, block reduction, quantization, dithering, outlines)
//  2. [imageio] - Image decoding and encoding for common formats
//  3. [pipeline] - Orchestration (decode → process → encode) with caching
//  4. [cache] - Result caching (file-based, Redis, null)
//  5. [errors], [observability], [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow through retropix:
//
//	Input image (PNG/JPEG/GIF/BMP/TIFF/WebP)
//	         ↓
//	    [imageio] package (decode to RGB buffer)
//	         ↓
//	    [pixelart] package (blur → reduce → quantize → dither → expand → enhance → outline)
//	         ↓
//	    [imageio] package (encode to the requested format)
//	         ↓
//	    PNG/JPEG/GIF/BMP/TIFF output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, "photo.jpg", pipeline.Options{
//		BlockSize: 8,
//		Palette:   pixelart.PaletteNES,
//	})
package pkg
