package filters

import (
	"bytes"
	"encoding/ascii85"
	"encoding/hex"
	"fmt"
)

// ASCIIHexDecode decodes hexadecimal data. Whitespace is ignored, > ends
// the data and an odd final digit is padded with 0.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	if i := bytes.IndexByte(data, '>'); i >= 0 {
		data = data[:i]
	}
	digits := stripWhitespace(data)
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, len(digits)/2)
	if _, err := hex.Decode(out, digits); err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return out, nil
}

// ASCII85Decode decodes base-85 data. Whitespace is ignored, an optional
// <~ prefix is skipped and ~> ends the data.
func ASCII85Decode(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(bytes.TrimLeft(data, " \t\r\n\f\x00"), []byte("<~"))
	if i := bytes.Index(data, []byte("~>")); i >= 0 {
		data = data[:i]
	}

	out := make([]byte, 4*len(data)+4)
	n, _, err := ascii85.Decode(out, stripWhitespace(data), true)
	if err != nil {
		return nil, fmt.Errorf("invalid ASCII85 data: %w", err)
	}
	return out[:n], nil
}

// RunLengthDecode decodes PackBits-style runs: a length byte L below 128
// copies the next L+1 bytes, above 128 repeats the next byte 257-L times,
// and 128 ends the data.
func RunLengthDecode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	for i := 0; i < len(data); {
		l := int(data[i])
		i++
		switch {
		case l == 128:
			return out.Bytes(), nil
		case l < 128:
			if i+l+1 > len(data) {
				return nil, fmt.Errorf("literal run past end of data")
			}
			out.Write(data[i : i+l+1])
			i += l + 1
		default:
			if i >= len(data) {
				return nil, fmt.Errorf("repeat run past end of data")
			}
			out.Write(bytes.Repeat(data[i:i+1], 257-l))
			i++
		}
	}
	return out.Bytes(), nil
}

func stripWhitespace(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n', '\f', 0:
		default:
			out = append(out, c)
		}
	}
	return out
}
