/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Info describes a decoded image header.
type Info struct {
	Width  int
	Height int
	// Format is the normalized extension without the dot, e.g. "jpg".
	Format string
}

// Probe reads the image header only and returns dimensions and format.
// It fails on data that is not a registered image format.
func Probe(data []byte) (*Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unrecognized image data: %w", err)
	}
	return &Info{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: NormalizeFormat(format),
	}, nil
}

// NormalizeFormat maps decoder names and file extensions to a canonical
// lowercase extension without the leading dot.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

// ResolutionLabel buckets an image into a resolution class by its longest side.
func ResolutionLabel(width, height int) string {
	side := width
	if height > side {
		side = height
	}
	switch {
	case side >= 7680:
		return "8K"
	case side >= 3840:
		return "4K"
	case side >= 2560:
		return "2K"
	case side >= 1920:
		return "1080p"
	case side >= 1280:
		return "720p"
	default:
		return "SD"
	}
}

const (
	maxLongSide      = 2048
	firstPassQuality = 85
	stepQuality      = 75
	floorQuality     = 60
)

// sides the downscale ladder walks after the first pass
var ladderSides = []int{1536, 1280, 1024, 768, 512}

// Recompress re-encodes an image as JPEG so that it fits within maxBytes.
// Animated inputs keep only their first frame and transparency is flattened
// onto a white background. The image is first bounded to a 2048px longest
// side at quality 85, then walked down the resize ladder at quality 75.
// If the floor quality still exceeds maxBytes the smallest rendition is
// returned anyway; callers decide whether best effort is acceptable.
func Recompress(data []byte, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("invalid max size %d", maxBytes)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	flat := flattenOnWhite(img)
	if longestSide(flat) > maxLongSide {
		flat = resizeLongSide(flat, maxLongSide)
	}
	out, err := encodeJPEG(flat, firstPassQuality)
	if err != nil {
		return nil, err
	}
	if len(out) <= maxBytes {
		return out, nil
	}
	for _, side := range ladderSides {
		if longestSide(flat) > side {
			flat = resizeLongSide(flat, side)
		}
		if out, err = encodeJPEG(flat, stepQuality); err != nil {
			return nil, err
		}
		if len(out) <= maxBytes {
			return out, nil
		}
	}
	return encodeJPEG(flat, floorQuality)
}

// flattenOnWhite draws the image over an opaque white canvas of the same size.
func flattenOnWhite(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.OverlayCenter(canvas, img, 1.0)
}

func longestSide(img image.Image) int {
	bounds := img.Bounds()
	if bounds.Dx() >= bounds.Dy() {
		return bounds.Dx()
	}
	return bounds.Dy()
}

// resizeLongSide scales the image so its longest side equals side, keeping aspect ratio.
func resizeLongSide(img *image.NRGBA, side int) *image.NRGBA {
	bounds := img.Bounds()
	if bounds.Dx() >= bounds.Dy() {
		return imaging.Resize(img, side, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, side, imaging.Lanczos)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNG re-encodes an image as PNG, used when converting GIFs ahead of
// vision calls that reject animated formats.
func EncodePNG(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
