package filters

import "fmt"

// Encoded image formats left in place by Decode
const (
	FormatJPEG     = "jpg"
	FormatJPEG2000 = "jp2"
)

// Stage is one filter of a chain with its decode parameters
type Stage struct {
	Name   string
	Params Params
}

// Result holds the output of a filter chain
type Result struct {
	Data []byte

	// Format is empty when Data is fully decoded sample data, or the file
	// extension of the encoded image Data still holds
	Format string
}

// Decode applies stages in order. An image codec must be the last stage.
func Decode(data []byte, stages []Stage) (Result, error) {
	for i, st := range stages {
		if format := passthroughFormat(st.Name); format != "" {
			if i != len(stages)-1 {
				return Result{}, fmt.Errorf("%s must be the last filter", st.Name)
			}
			return Result{Data: data, Format: format}, nil
		}

		var err error
		data, err = decodeStage(data, st)
		if err != nil {
			return Result{}, fmt.Errorf("filter %d (%s) failed: %w", i, st.Name, err)
		}
	}
	return Result{Data: data}, nil
}

func passthroughFormat(name string) string {
	switch name {
	case "DCTDecode", "DCT":
		return FormatJPEG
	case "JPXDecode":
		return FormatJPEG2000
	default:
		return ""
	}
}

// decodeStage applies a single filter. Abbreviated names are those allowed
// in inline images.
func decodeStage(data []byte, st Stage) ([]byte, error) {
	switch st.Name {
	case "FlateDecode", "Fl":
		return FlateDecode(data, st.Params)
	case "LZWDecode", "LZW":
		return LZWDecode(data, st.Params)
	case "ASCIIHexDecode", "AHx":
		return ASCIIHexDecode(data)
	case "ASCII85Decode", "A85":
		return ASCII85Decode(data)
	case "RunLengthDecode", "RL":
		return RunLengthDecode(data)
	case "CCITTFaxDecode", "CCF":
		return CCITTFaxDecode(data, st.Params)
	case "JBIG2Decode", "Crypt":
		return nil, fmt.Errorf("%s not supported", st.Name)
	default:
		return nil, fmt.Errorf("unknown filter: %s", st.Name)
	}
}
