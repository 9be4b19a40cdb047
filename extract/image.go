package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// RawImage is an image XObject whose stream decoded to raw pixel samples.
type RawImage struct {
	Width            int
	Height           int
	Components       int // 1 gray, 3 RGB, 4 CMYK
	BitsPerComponent int
	Data             []byte
}

// ToPNG encodes the raw samples as PNG.
func (img *RawImage) ToPNG() ([]byte, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", img.Width, img.Height)
	}

	var goImg image.Image
	var err error

	switch img.Components {
	case 1:
		goImg, err = img.toGray()
	case 3:
		goImg, err = img.toRGB()
	case 4:
		goImg, err = img.toCMYK()
	default:
		return nil, fmt.Errorf("unsupported component count: %d", img.Components)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, goImg); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// toGray expands 1, 4 or 8 bit grayscale rows (each padded to a byte
// boundary) to 8-bit gray.
func (img *RawImage) toGray() (*image.Gray, error) {
	bpc := img.BitsPerComponent
	if bpc != 1 && bpc != 4 && bpc != 8 {
		return nil, fmt.Errorf("unsupported bits per component: %d", bpc)
	}

	bytesPerRow := (img.Width*bpc + 7) / 8
	if expected := bytesPerRow * img.Height; len(img.Data) < expected {
		return nil, fmt.Errorf("insufficient data for %d-bit gray image: got %d, expected %d", bpc, len(img.Data), expected)
	}

	goImg := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	maxVal := byte(1<<bpc - 1)
	perByte := 8 / bpc

	for y := 0; y < img.Height; y++ {
		row := img.Data[y*bytesPerRow:]
		for x := 0; x < img.Width; x++ {
			var v byte
			if bpc == 8 {
				v = row[x]
			} else {
				// Most significant bits first
				shift := uint(8 - bpc*(x%perByte+1))
				sample := (row[x/perByte] >> shift) & maxVal
				v = sample * (255 / maxVal)
			}
			goImg.Pix[y*goImg.Stride+x] = v
		}
	}
	return goImg, nil
}

func (img *RawImage) toRGB() (*image.RGBA, error) {
	if img.BitsPerComponent != 8 {
		return nil, fmt.Errorf("unsupported bits per component for RGB: %d", img.BitsPerComponent)
	}
	if expected := img.Width * img.Height * 3; len(img.Data) < expected {
		return nil, fmt.Errorf("insufficient data for RGB image: got %d, expected %d", len(img.Data), expected)
	}

	goImg := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i := 0; i < img.Width*img.Height; i++ {
		goImg.Pix[i*4+0] = img.Data[i*3+0]
		goImg.Pix[i*4+1] = img.Data[i*3+1]
		goImg.Pix[i*4+2] = img.Data[i*3+2]
		goImg.Pix[i*4+3] = 255
	}
	return goImg, nil
}

func (img *RawImage) toCMYK() (*image.RGBA, error) {
	if img.BitsPerComponent != 8 {
		return nil, fmt.Errorf("unsupported bits per component for CMYK: %d", img.BitsPerComponent)
	}
	if expected := img.Width * img.Height * 4; len(img.Data) < expected {
		return nil, fmt.Errorf("insufficient data for CMYK image: got %d, expected %d", len(img.Data), expected)
	}

	goImg := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i := 0; i < img.Width*img.Height; i++ {
		src := img.Data[i*4:]
		r, g, b := color.CMYKToRGB(src[0], src[1], src[2], src[3])
		goImg.Pix[i*4+0] = r
		goImg.Pix[i*4+1] = g
		goImg.Pix[i*4+2] = b
		goImg.Pix[i*4+3] = 255
	}
	return goImg, nil
}
