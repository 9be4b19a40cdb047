// Package filters decodes the stream filters found on PDF image XObjects.
//
// [Decode] applies a filter chain to raw stream bytes:
//
//	res, err := filters.Decode(raw, []filters.Stage{
//	    {Name: "FlateDecode", Params: filters.Params{"Predictor": 15, "Columns": 64, "Colors": 3}},
//	})
//
// Decoding stops at an image codec whose output is a file format of its own
// (DCTDecode is JPEG, JPXDecode is JPEG 2000). Such data is returned as
// stored with [Result.Format] set, so it can be written out unchanged.
//
// # Supported Filters
//
//   - FlateDecode and LZWDecode, with TIFF and PNG predictors
//   - ASCIIHexDecode and ASCII85Decode
//   - RunLengthDecode
//   - CCITTFaxDecode (Group 3 and Group 4) to 1 bit per pixel, 0 is black
//   - DCTDecode and JPXDecode, passed through
package filters
