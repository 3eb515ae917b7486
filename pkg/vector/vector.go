package vector

import (
	"bytes"
	"image"
	"io"
	"strconv"

	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/raster"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/beevik/etree"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Document is a parsed vector image
type Document struct {
	Source string
	width  float64
	height float64
	icon   *oksvg.SvgIcon
}

// NewDocument creates a document with a known size and nothing to draw.
// Renderer refuses such documents; it serves Parser implementations that
// pair with their own Transcoder.
func NewDocument(source string, width, height float64) *Document {
	return &Document{Source: source, width: width, height: height}
}

// Bounds returns the intrinsic size in pixels. Either value is zero when
// the document declares no usable size.
func (d *Document) Bounds() (float64, float64) {
	return d.width, d.height
}

// Parser loads documents
type Parser interface {
	Load(path string) (*Document, error)
}

// Transcoder renders a document at a given size
type Transcoder interface {
	Transcode(doc *Document, width, height int, w io.Writer) error
}

// Loader reads documents through a types.FS
type Loader struct {
	fs types.FS
}

// NewLoader creates a Loader
func NewLoader(fs types.FS) *Loader {
	return &Loader{fs: fs}
}

// Load reads and parses the document at path
func (l *Loader) Load(path string) (*Document, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTranscode, "failed to read %s", path).
			WithDetail("source", path)
	}
	return Parse(data, path)
}

// Parse parses document bytes; source is used in error messages only
func Parse(data []byte, source string) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTranscode, "failed to parse %s", source).
			WithDetail("source", source)
	}
	root := tree.Root()
	if root == nil || root.Tag != "svg" {
		return nil, errors.Newf(errors.ErrTranscode, "%s is not an svg document", source).
			WithDetail("source", source)
	}

	w, h := intrinsicSize(root)

	// oksvg only understands unitless root sizes, so the drawing is handed
	// over with its size expressed as a viewBox alone.
	root.RemoveAttr("width")
	root.RemoveAttr("height")
	normalizeViewBox(root, w, h)
	normalized, err := tree.WriteToBytes()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTranscode, "failed to normalize %s", source).
			WithDetail("source", source)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(normalized), oksvg.WarnErrorMode)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTranscode, "failed to read drawing from %s", source).
			WithDetail("source", source)
	}

	return &Document{Source: source, width: w, height: h, icon: icon}, nil
}

// normalizeViewBox gives root a viewBox when it lacks a valid one. A
// document sized on one axis only is drawn square, like its target.
func normalizeViewBox(root *etree.Element, w, h float64) {
	if _, _, ok := parseViewBox(root.SelectAttrValue("viewBox", "")); ok {
		return
	}
	root.RemoveAttr("viewBox")
	switch {
	case w > 0 && h <= 0:
		h = w
	case h > 0 && w <= 0:
		w = h
	}
	if w > 0 && h > 0 {
		root.CreateAttr("viewBox", "0 0 "+formatNumber(w)+" "+formatNumber(h))
	}
}

// formatNumber writes v without exponent, which oksvg cannot read
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// intrinsicSize reads width and height from the root attributes, falling
// back to the viewBox for whichever is missing or relative.
func intrinsicSize(root *etree.Element) (float64, float64) {
	vbW, vbH, hasViewBox := parseViewBox(root.SelectAttrValue("viewBox", ""))
	w, wok := parseLength(root.SelectAttrValue("width", ""))
	h, hok := parseLength(root.SelectAttrValue("height", ""))

	switch {
	case wok && hok:
		return w, h
	case wok:
		if hasViewBox {
			return w, w * vbH / vbW
		}
		return w, 0
	case hok:
		if hasViewBox {
			return h * vbW / vbH, h
		}
		return 0, h
	case hasViewBox:
		return vbW, vbH
	}
	return 0, 0
}

// DefaultMaxPixels caps the canvas area of a single render (8192x8192)
const DefaultMaxPixels int64 = 64 << 20

// Renderer rasterizes documents and encodes them with a raster.Encoder
type Renderer struct {
	encoder   raster.Encoder
	maxPixels int64
}

// NewRenderer creates a Renderer writing through enc
func NewRenderer(enc raster.Encoder) *Renderer {
	return &Renderer{encoder: enc, maxPixels: DefaultMaxPixels}
}

// WithMaxPixels sets the largest canvas area Transcode accepts; n <= 0
// keeps DefaultMaxPixels
func (r *Renderer) WithMaxPixels(n int64) *Renderer {
	if n > 0 {
		r.maxPixels = n
	}
	return r
}

// Extension is the file extension of the encoder's output
func (r *Renderer) Extension() string {
	return r.encoder.Extension()
}

// Transcode draws doc scaled to width x height and encodes it to w
func (r *Renderer) Transcode(doc *Document, width, height int, w io.Writer) error {
	if width <= 0 || height <= 0 {
		return errors.Newf(errors.ErrTranscode, "invalid target size %dx%d for %s", width, height, doc.Source).
			WithDetail("source", doc.Source)
	}
	if int64(width)*int64(height) > r.maxPixels {
		return errors.Newf(errors.ErrTranscode, "target size %dx%d for %s exceeds %d pixels",
			width, height, doc.Source, r.maxPixels).
			WithDetail("source", doc.Source)
	}
	if doc.icon == nil {
		return errors.Newf(errors.ErrTranscode, "%s has no drawing", doc.Source).
			WithDetail("source", doc.Source)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	doc.icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	dasher := rasterx.NewDasher(width, height, scanner)
	doc.icon.Draw(dasher, 1.0)

	if err := r.encoder.Encode(w, img); err != nil {
		return errors.Wrapf(err, errors.ErrTranscode, "failed to encode %s", doc.Source).
			WithDetail("source", doc.Source)
	}
	return nil
}
