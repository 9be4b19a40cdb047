package extract

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatal("missing PNG magic bytes")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	return img
}

func TestRawImage_ToPNG_Gray8(t *testing.T) {
	img := &RawImage{Width: 2, Height: 2, Components: 1, BitsPerComponent: 8, Data: []byte{0, 128, 64, 255}}

	data, err := img.ToPNG()
	if err != nil {
		t.Fatalf("ToPNG failed: %v", err)
	}
	decoded := decodePNG(t, data)
	if decoded.Bounds().Dx() != 2 || decoded.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", decoded.Bounds())
	}
	if r, _, _, _ := decoded.At(1, 0).RGBA(); r>>8 != 128 {
		t.Errorf("pixel (1,0) = %d, want 128", r>>8)
	}
}

func TestRawImage_ToPNG_Bilevel(t *testing.T) {
	// 10101010: alternating white/black, MSB first
	img := &RawImage{Width: 8, Height: 1, Components: 1, BitsPerComponent: 1, Data: []byte{0xAA}}

	data, err := img.ToPNG()
	if err != nil {
		t.Fatalf("ToPNG failed: %v", err)
	}
	decoded := decodePNG(t, data)
	for x := 0; x < 8; x++ {
		r, _, _, _ := decoded.At(x, 0).RGBA()
		want := uint32(0)
		if x%2 == 0 {
			want = 255
		}
		if r>>8 != want {
			t.Errorf("pixel %d = %d, want %d", x, r>>8, want)
		}
	}
}

func TestRawImage_ToPNG_Gray4(t *testing.T) {
	// Width 3 pads each row to 2 bytes
	img := &RawImage{Width: 3, Height: 1, Components: 1, BitsPerComponent: 4, Data: []byte{0xF0, 0x80}}

	data, err := img.ToPNG()
	if err != nil {
		t.Fatalf("ToPNG failed: %v", err)
	}
	decoded := decodePNG(t, data)
	want := []uint32{255, 0, 136}
	for x, w := range want {
		if r, _, _, _ := decoded.At(x, 0).RGBA(); r>>8 != w {
			t.Errorf("pixel %d = %d, want %d", x, r>>8, w)
		}
	}
}

func TestRawImage_ToPNG_RGB(t *testing.T) {
	img := &RawImage{Width: 2, Height: 1, Components: 3, BitsPerComponent: 8, Data: []byte{255, 0, 0, 0, 255, 0}}

	data, err := img.ToPNG()
	if err != nil {
		t.Fatalf("ToPNG failed: %v", err)
	}
	decoded := decodePNG(t, data)
	r, g, _, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 {
		t.Errorf("pixel 0 = (%d,%d), want red", r>>8, g>>8)
	}
}

func TestRawImage_ToPNG_CMYK(t *testing.T) {
	// Pure cyan
	img := &RawImage{Width: 1, Height: 1, Components: 4, BitsPerComponent: 8, Data: []byte{255, 0, 0, 0}}

	data, err := img.ToPNG()
	if err != nil {
		t.Fatalf("ToPNG failed: %v", err)
	}
	decoded := decodePNG(t, data)
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("pixel = (%d,%d,%d), want cyan", r>>8, g>>8, b>>8)
	}
}

func TestRawImage_ToPNG_Errors(t *testing.T) {
	tests := []struct {
		name string
		img  RawImage
	}{
		{"zero size", RawImage{Width: 0, Height: 1, Components: 1, BitsPerComponent: 8}},
		{"short gray", RawImage{Width: 4, Height: 4, Components: 1, BitsPerComponent: 8, Data: []byte{1}}},
		{"short rgb", RawImage{Width: 2, Height: 2, Components: 3, BitsPerComponent: 8, Data: make([]byte, 11)}},
		{"short cmyk", RawImage{Width: 1, Height: 1, Components: 4, BitsPerComponent: 8, Data: make([]byte, 3)}},
		{"gray 16 bit", RawImage{Width: 1, Height: 1, Components: 1, BitsPerComponent: 16, Data: make([]byte, 2)}},
		{"rgb 16 bit", RawImage{Width: 1, Height: 1, Components: 3, BitsPerComponent: 16, Data: make([]byte, 6)}},
		{"two components", RawImage{Width: 1, Height: 1, Components: 2, BitsPerComponent: 8, Data: make([]byte, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.img.ToPNG(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
