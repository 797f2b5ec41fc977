// Package imaging normalizes uploaded group photos before they are stored.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"io"

	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"golang.org/x/image/draw"
)

// DefaultMaxPixels is the decode budget used when none is configured.
const DefaultMaxPixels = 40_000_000

// JPEGQuality is the encoder quality used for stored photos.
const JPEGQuality = 85

// ContentType of every image produced by Downscale.
const ContentType = "image/jpeg"

// Downscale decodes a JPEG, PNG or GIF from r and re-encodes it as JPEG so
// that it fits into maxW x maxH. The aspect ratio is preserved and images are
// never enlarged. Images whose declared canvas exceeds maxPixels are rejected
// before any pixel data is decoded; a non-positive maxPixels means
// DefaultMaxPixels. Transparent areas are flattened onto white.
func Downscale(r io.Reader, maxW, maxH, maxPixels int) ([]byte, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidImage, fmt.Sprintf("Could not decode image: %v", err))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidImage,
			fmt.Sprintf("Image is %dx%d, larger than the %d pixel limit", cfg.Width, cfg.Height, maxPixels))
	}

	src, _, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidImage, fmt.Sprintf("Could not decode image: %v", err))
	}

	b := src.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), maxW, maxH)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if w != b.Dx() || h != b.Dy() {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// FitWithin returns the largest size with the aspect ratio of w x h that fits
// into maxW x maxH. Non-positive limits disable the bound on that axis.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
	}
	if scale >= 1 {
		return w, h
	}
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
