// Package model provides the intermediate representation (IR) for a
// reconstructed document.
//
// The pipeline consumes page primitives and produces content nodes:
//
//   - [Fragment] - a positioned run of text extracted from one page
//   - [ImagePrimitive] - one embedded image's bytes, declared extension and index
//
// Content nodes implement the [Node] interface. The concrete types are:
//
//   - [Heading] - a section or chapter label
//   - [Paragraph] - body text
//   - [Figure] - an image written to the media store, with a caption
//
// A [Page] holds the nodes of one source page in reading order and a
// [Document] holds the pages of one conversion.
//
// # Geometry
//
// [BBox] uses a top-down coordinate space: Top grows toward the bottom of
// the page, so sorting by ascending Top yields top-to-bottom order.
//
// # Errors
//
// Only the I/O boundaries of the pipeline fail. [ExtractionError] wraps a
// failure of the page-content extractor and [IOError] wraps a failure of the
// media store. Both match [ErrExtraction] and [ErrIO] with errors.Is.
package model
