// Package imageprobe reads image dimensions without decoding pixel data,
// so layout can cache an aspect ratio for whatever the user uploads.
package imageprobe

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Info struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Aspect float64 `json:"aspect"`
	Format string  `json:"format"`
}

// Probe inspects encoded image bytes and returns dimensions and the derived
// width/height aspect ratio.
func Probe(data []byte) (*Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to probe image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image has degenerate dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return &Info{
		Width:  cfg.Width,
		Height: cfg.Height,
		Aspect: float64(cfg.Width) / float64(cfg.Height),
		Format: format,
	}, nil
}
