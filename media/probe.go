package media

import (
	"bytes"
	"fmt"
	"image"

	// Register decoders for Probe
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes an encoded image
type Info struct {
	Format string // As registered with the image package: "jpeg", "png", ...
	Width  int
	Height int
}

// Ext returns the conventional file extension for the format
func (i Info) Ext() string {
	switch i.Format {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	default:
		return i.Format
	}
}

// Probe reads the header of an encoded image and reports its format and
// dimensions without decoding the pixels.
func Probe(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, fmt.Errorf("empty image data")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("failed to read image header: %w", err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
