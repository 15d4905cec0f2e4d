// Package export rasterizes canonical documents into PNG images and paginated
// A4 PDFs. It only ever accepts *document.Document, which carries no scale.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"time"

	"resumeStudio/internal/document"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts "png" and "pdf"; everything else is an error.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "image/png"
}

// Artifact 是一次导出的产物，生成后不再修改。
type Artifact struct {
	Filename    string
	ContentType string
	Format      Format
	Quality     Quality
	Data        []byte
	Pages       int
	PixelWidth  int
	PixelHeight int
	Elapsed     time.Duration
}

// Exporter runs the capture pipeline on top of a Rasterizer.
type Exporter struct {
	rasterizer  Rasterizer
	logger      *slog.Logger
	stylesheets []string
}

// NewExporter returns an exporter; stylesheets are linked into every snapshot (web fonts).
func NewExporter(r Rasterizer, logger *slog.Logger, stylesheets ...string) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{rasterizer: r, logger: logger, stylesheets: stylesheets}
}

// ExportImage rasterizes doc into a PNG. A nil document is a no-op.
func (e *Exporter) ExportImage(ctx context.Context, doc *document.Document, filename string, q Quality) (*Artifact, error) {
	if doc == nil {
		return nil, nil
	}
	q = ParseQuality(string(q))
	start := time.Now()
	img, err := e.capture(ctx, doc, q)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	b := img.Bounds()
	art := &Artifact{
		Filename:    EnsureExtension(filename, FormatPNG),
		ContentType: FormatPNG.ContentType(),
		Format:      FormatPNG,
		Quality:     q,
		Data:        buf.Bytes(),
		Pages:       1,
		PixelWidth:  b.Dx(),
		PixelHeight: b.Dy(),
		Elapsed:     time.Since(start),
	}
	e.logger.Info("image exported", "file", art.Filename, "quality", q, "width", art.PixelWidth, "height", art.PixelHeight, "bytes", len(art.Data))
	return art, nil
}

// ExportPDF rasterizes doc and paginates it onto A4 pages. A nil document is a no-op.
func (e *Exporter) ExportPDF(ctx context.Context, doc *document.Document, filename string, q Quality) (*Artifact, error) {
	if doc == nil {
		return nil, nil
	}
	q = ParseQuality(string(q))
	start := time.Now()
	img, err := e.capture(ctx, doc, q)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, pages, err := BuildPDF(img)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	art := &Artifact{
		Filename:    EnsureExtension(filename, FormatPDF),
		ContentType: FormatPDF.ContentType(),
		Format:      FormatPDF,
		Quality:     q,
		Data:        data,
		Pages:       pages,
		PixelWidth:  b.Dx(),
		PixelHeight: b.Dy(),
		Elapsed:     time.Since(start),
	}
	e.logger.Info("pdf exported", "file", art.Filename, "quality", q, "pages", pages, "bytes", len(data))
	return art, nil
}

// Export dispatches on format.
func (e *Exporter) Export(ctx context.Context, doc *document.Document, filename string, f Format, q Quality) (*Artifact, error) {
	switch f {
	case FormatPDF:
		return e.ExportPDF(ctx, doc, filename, q)
	case FormatPNG:
		return e.ExportImage(ctx, doc, filename, q)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

// capture 在离屏副本上完成两阶段截图，并把结果铺到白底上。
func (e *Exporter) capture(ctx context.Context, doc *document.Document, q Quality) (*image.RGBA, error) {
	snap, err := NewSnapshot(doc, e.stylesheets...)
	if err != nil {
		return nil, err
	}

	capt, err := e.rasterizer.Prepare(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("%w: prepare: %w", ErrRasterize, err)
	}
	defer func() {
		if cerr := capt.Close(); cerr != nil {
			e.logger.Warn("close capture failed", "error", cerr)
		}
	}()

	img, err := capt.Rasterize(ctx, q.Scale())
	if err != nil {
		return nil, fmt.Errorf("%w: capture: %w", ErrRasterize, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty bitmap", ErrRasterize)
	}
	return flatten(img), nil
}

// flatten composites img over opaque white; the document has no transparency.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
