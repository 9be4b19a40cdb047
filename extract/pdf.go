package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/reflow/internal/filters"
	"github.com/tsawler/reflow/model"
)

// defaultPageHeight is used when a page has no usable MediaBox (US Letter)
const defaultPageHeight = 792.0

// PDFSource extracts fragments and images from a PDF file. Access to the
// underlying reader is serialized, so a PDFSource may be shared by
// concurrent callers.
type PDFSource struct {
	file      *os.File
	reader    *pdf.Reader
	config    FragmentConfig
	encrypted bool

	mu       sync.Mutex
	warnings []model.Warning
}

// OpenPDF opens a PDF file with the default fragment configuration
func OpenPDF(path string) (*PDFSource, error) {
	return OpenPDFWithConfig(path, DefaultFragmentConfig())
}

// OpenPDFWithConfig opens a PDF file with a custom fragment configuration
func OpenPDFWithConfig(path string, config FragmentConfig) (src *PDFSource, err error) {
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, &model.ExtractionError{Page: -1, Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &model.ExtractionError{Page: -1, Err: fmt.Errorf("failed to open PDF: %w", err)}
	}
	return &PDFSource{
		file:      f,
		reader:    r,
		config:    config,
		encrypted: r.Trailer().Key("Encrypt").Kind() != pdf.Null,
	}, nil
}

// Close releases the underlying file
func (s *PDFSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// PageCount returns the number of pages
func (s *PDFSource) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reader.NumPage()
}

// Warnings returns the images skipped so far
func (s *PDFSource) Warnings() []model.Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Warning(nil), s.warnings...)
}

// Fragments returns the page's text grouped into fragments
func (s *PDFSource) Fragments(ctx context.Context, page int) (fragments []model.Fragment, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.recoverPage(page, &err)

	p, err := s.page(page)
	if err != nil {
		return nil, err
	}

	content := p.Content()
	glyphs := make([]Glyph, len(content.Text))
	for i, t := range content.Text {
		glyphs[i] = Glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S}
	}

	return BuildFragments(glyphs, pageHeight(p), s.config), nil
}

// Images returns the page's image XObjects in resource-name order. Pixel
// streams are decoded and re-encoded as PNG; JPEG and JPEG 2000 data is
// returned as stored. Images that cannot be read, such as JBIG2 streams, are
// skipped and recorded as warnings.
func (s *PDFSource) Images(ctx context.Context, page int) (images []model.ImagePrimitive, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.recoverPage(page, &err)

	p, err := s.page(page)
	if err != nil {
		return nil, err
	}

	xobjects := p.Resources().Key("XObject")
	if xobjects.Kind() != pdf.Dict {
		return nil, nil
	}

	names := xobjects.Keys()
	sort.Strings(names)

	for _, name := range names {
		obj := xobjects.Key(name)
		if obj.Key("Subtype").Name() != "Image" {
			continue
		}
		img, err := s.readImage(obj)
		if err != nil {
			s.warnings = append(s.warnings, model.Warning{
				Page:    page,
				Message: fmt.Sprintf("skipped image %s: %v", name, err),
			})
			continue
		}
		img.Index = len(images)
		images = append(images, img)
	}
	return images, nil
}

func (s *PDFSource) page(page int) (pdf.Page, error) {
	if page < 0 || page >= s.reader.NumPage() {
		return pdf.Page{}, &model.ExtractionError{Page: page, Err: fmt.Errorf("page out of range (have %d)", s.reader.NumPage())}
	}
	p := s.reader.Page(page + 1)
	if p.V.IsNull() {
		return pdf.Page{}, &model.ExtractionError{Page: page, Err: fmt.Errorf("page object missing")}
	}
	return p, nil
}

// recoverPage converts a panic from the PDF library into an ExtractionError
func (s *PDFSource) recoverPage(page int, err *error) {
	if r := recover(); r != nil {
		*err = &model.ExtractionError{Page: page, Err: fmt.Errorf("malformed page content: %v", r)}
	}
}

// pageHeight returns the MediaBox height, following inherited values up the
// page tree
func pageHeight(p pdf.Page) float64 {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
				return h
			}
		}
	}
	return defaultPageHeight
}

// readImage reads one image XObject. Filters are applied here rather than by
// the PDF library, which only implements the general-purpose ones; JPEG and
// JPEG 2000 data is returned as stored.
func (s *PDFSource) readImage(obj pdf.Value) (img model.ImagePrimitive, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	width := int(obj.Key("Width").Int64())
	height := int(obj.Key("Height").Int64())
	if width <= 0 || height <= 0 {
		return img, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	decoded, err := s.decodeStream(obj)
	if err != nil {
		return img, err
	}

	img = model.ImagePrimitive{Width: width, Height: height}
	if decoded.Format != "" {
		img.Data, img.Ext = decoded.Data, decoded.Format
		return img, nil
	}

	components, err := colorComponents(obj.Key("ColorSpace"))
	if err != nil {
		return img, err
	}
	bpc := int(obj.Key("BitsPerComponent").Int64())
	if bpc == 0 {
		bpc = 8
	}
	if obj.Key("ImageMask").Bool() || lastFilter(obj) == "CCITTFaxDecode" {
		components, bpc = 1, 1
	}

	raw := &RawImage{
		Width:            width,
		Height:           height,
		Components:       components,
		BitsPerComponent: bpc,
		Data:             decoded.Data,
	}
	encoded, err := raw.ToPNG()
	if err != nil {
		return img, err
	}
	img.Data, img.Ext = encoded, "png"
	return img, nil
}

// decodeStream reads a stream's stored bytes and applies its filter chain.
// Encrypted documents are read through the PDF library, which decrypts
// before filtering, so only the filters it implements are available there.
func (s *PDFSource) decodeStream(obj pdf.Value) (filters.Result, error) {
	if s.encrypted {
		rc := obj.Reader()
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return filters.Result{}, fmt.Errorf("failed to read image stream: %w", err)
		}
		return filters.Result{Data: data}, nil
	}

	raw, err := s.rawStream(obj)
	if err != nil {
		return filters.Result{}, err
	}
	return filters.Decode(raw, filterStages(obj))
}

// rawStream returns the stored bytes of a stream. The library formats a
// stream value as its dictionary followed by "@" and the file offset of the
// data.
func (s *PDFSource) rawStream(obj pdf.Value) ([]byte, error) {
	if obj.Kind() != pdf.Stream {
		return nil, fmt.Errorf("image is not a stream")
	}
	if s.file == nil {
		return nil, fmt.Errorf("source is closed")
	}

	desc := obj.String()
	at := strings.LastIndex(desc, "@")
	if at < 0 {
		return nil, fmt.Errorf("stream offset not available")
	}
	offset, err := strconv.ParseInt(desc[at+1:], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid stream offset: %w", err)
	}

	length := obj.Key("Length").Int64()
	if length < 0 {
		return nil, fmt.Errorf("invalid stream length %d", length)
	}
	data, err := io.ReadAll(io.NewSectionReader(s.file, offset, length))
	if err != nil {
		return nil, fmt.Errorf("failed to read image stream: %w", err)
	}
	return data, nil
}

// filterStages lists a stream's filters with their DecodeParms
func filterStages(obj pdf.Value) []filters.Stage {
	f := obj.Key("Filter")
	parms := obj.Key("DecodeParms")

	switch f.Kind() {
	case pdf.Name:
		if parms.Kind() == pdf.Array && parms.Len() > 0 {
			parms = parms.Index(0)
		}
		return []filters.Stage{{Name: f.Name(), Params: decodeParams(parms)}}
	case pdf.Array:
		stages := make([]filters.Stage, f.Len())
		for i := range stages {
			var p pdf.Value
			if parms.Kind() == pdf.Array {
				p = parms.Index(i)
			}
			stages[i] = filters.Stage{Name: f.Index(i).Name(), Params: decodeParams(p)}
		}
		return stages
	}
	return nil
}

// decodeParams converts a DecodeParms dictionary to filter parameters.
// Only scalar entries are kept.
func decodeParams(d pdf.Value) filters.Params {
	if d.Kind() != pdf.Dict {
		return nil
	}
	params := make(filters.Params)
	for _, key := range d.Keys() {
		v := d.Key(key)
		switch v.Kind() {
		case pdf.Integer:
			params[key] = int(v.Int64())
		case pdf.Real:
			params[key] = v.Float64()
		case pdf.Bool:
			params[key] = v.Bool()
		case pdf.Name:
			params[key] = v.Name()
		}
	}
	return params
}

// lastFilter returns the final filter of a stream
func lastFilter(obj pdf.Value) string {
	f := obj.Key("Filter")
	switch f.Kind() {
	case pdf.Name:
		return f.Name()
	case pdf.Array:
		if n := f.Len(); n > 0 {
			return f.Index(n - 1).Name()
		}
	}
	return ""
}

// colorComponents returns the number of color components of a color space
func colorComponents(cs pdf.Value) (int, error) {
	switch cs.Kind() {
	case pdf.Null:
		return 1, nil
	case pdf.Name:
		switch cs.Name() {
		case "DeviceGray", "CalGray", "G":
			return 1, nil
		case "DeviceRGB", "CalRGB", "RGB":
			return 3, nil
		case "DeviceCMYK", "CMYK":
			return 4, nil
		}
		return 0, fmt.Errorf("unsupported color space %s", cs.Name())
	case pdf.Array:
		if cs.Len() == 0 {
			break
		}
		switch family := cs.Index(0).Name(); family {
		case "ICCBased":
			if n := int(cs.Index(1).Key("N").Int64()); n == 1 || n == 3 || n == 4 {
				return n, nil
			}
			return 0, fmt.Errorf("unsupported ICC component count")
		case "CalGray", "CalRGB":
			return colorComponents(cs.Index(0))
		default:
			return 0, fmt.Errorf("unsupported color space %s", family)
		}
	}
	return 0, fmt.Errorf("unrecognized color space")
}
