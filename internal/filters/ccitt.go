package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes Group 3 or Group 4 fax data, as used for scanned
// bi-level pages. The output has one bit per pixel, MSB first, rows padded
// to a byte, with 0 meaning black unless BlackIs1 is set.
//
// Parameters:
//   - K: negative for Group 4, otherwise Group 3 (default 0)
//   - Columns: width in pixels (default 1728)
//   - Rows: height in pixels (default 0, detected from the data)
//   - EncodedByteAlign: rows start on byte boundaries (default false)
//   - BlackIs1: 1 bits are black (default false)
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	sf := ccitt.Group3
	if params.Int("K", 0) < 0 {
		sf = ccitt.Group4
	}

	rows := params.Int("Rows", 0)
	if rows <= 0 {
		rows = ccitt.AutoDetectHeight
	}

	opts := &ccitt.Options{
		Align:  params.Bool("EncodedByteAlign", false),
		Invert: params.Bool("BlackIs1", false),
	}

	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, params.Int("Columns", 1728), rows, opts)
	return io.ReadAll(r)
}
