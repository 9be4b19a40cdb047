package filters

import (
	"bytes"
	"compress/lzw"
	"compress/zlib"
	"fmt"
	"io"

	tifflzw "golang.org/x/image/tiff/lzw"
)

// FlateDecode decompresses zlib data and undoes any predictor.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		// Many writers truncate the checksum; keep what was inflated
		if len(out) == 0 || err != io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("failed to decompress: %w", err)
		}
	}
	return unpredict(out, params)
}

// LZWDecode decompresses LZW data and undoes any predictor. EarlyChange
// defaults to 1, the TIFF code-width variant.
func LZWDecode(data []byte, params Params) ([]byte, error) {
	var rc io.ReadCloser
	if params.Int("EarlyChange", 1) == 0 {
		rc = lzw.NewReader(bytes.NewReader(data), lzw.MSB, 8)
	} else {
		rc = tifflzw.NewReader(bytes.NewReader(data), tifflzw.MSB, 8)
	}
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return unpredict(out, params)
}

// unpredict reverses the Predictor named in params. 1 (the default) is the
// identity, 2 is TIFF horizontal differencing, 10 through 15 are PNG row
// filters selected per row by a leading tag byte.
func unpredict(data []byte, params Params) ([]byte, error) {
	predictor := params.Int("Predictor", 1)
	if predictor == 1 {
		return data, nil
	}

	colors := params.Int("Colors", 1)
	bpc := params.Int("BitsPerComponent", 8)
	columns := params.Int("Columns", 1)
	if colors < 1 || bpc < 1 || columns < 1 {
		return nil, fmt.Errorf("invalid predictor parameters")
	}
	rowBytes := (columns*colors*bpc + 7) / 8
	pixelBytes := max((colors*bpc+7)/8, 1)

	switch {
	case predictor == 2:
		if bpc != 8 {
			return nil, fmt.Errorf("TIFF predictor needs 8 bits per component, got %d", bpc)
		}
		out := append([]byte(nil), data...)
		for row := 0; row+rowBytes <= len(out); row += rowBytes {
			for i := row + pixelBytes; i < row+rowBytes; i++ {
				out[i] += out[i-pixelBytes]
			}
		}
		return out, nil

	case predictor >= 10 && predictor <= 15:
		return unfilterPNG(data, rowBytes, pixelBytes)
	}
	return nil, fmt.Errorf("unsupported predictor: %d", predictor)
}

// unfilterPNG reverses PNG row filtering. A trailing partial row is dropped.
func unfilterPNG(data []byte, rowBytes, pixelBytes int) ([]byte, error) {
	stride := rowBytes + 1
	rows := len(data) / stride
	out := make([]byte, rows*rowBytes)
	prev := make([]byte, rowBytes)

	for r := 0; r < rows; r++ {
		tag := data[r*stride]
		in := data[r*stride+1 : (r+1)*stride]
		cur := out[r*rowBytes : (r+1)*rowBytes]

		for i := range cur {
			var left, upLeft byte
			if i >= pixelBytes {
				left = cur[i-pixelBytes]
				upLeft = prev[i-pixelBytes]
			}
			up := prev[i]

			switch tag {
			case 0:
				cur[i] = in[i]
			case 1:
				cur[i] = in[i] + left
			case 2:
				cur[i] = in[i] + up
			case 3:
				cur[i] = in[i] + byte((int(left)+int(up))/2)
			case 4:
				cur[i] = in[i] + paeth(left, up, upLeft)
			default:
				return nil, fmt.Errorf("row %d: unknown PNG filter %d", r, tag)
			}
		}
		prev = cur
	}
	return out, nil
}

// paeth picks the neighbor closest to left + up - upLeft
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
