package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"resumeStudio/internal/document"
	"resumeStudio/internal/render"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/templates"
)

// fakeRasterizer 模拟浏览器：如果根节点上残留 scale 变换，截图尺寸会随之缩放。
type fakeRasterizer struct {
	mu sync.Mutex

	height     int
	prepareErr error
	rasterErr  error
	block      chan struct{}

	prepared int
	closed   int
	snaps    []*Snapshot
}

func (f *fakeRasterizer) Prepare(_ context.Context, snap *Snapshot) (Capture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prepared++
	f.snaps = append(f.snaps, snap)
	if f.prepareErr != nil {
		return nil, f.prepareErr
	}
	return &fakeCapture{f: f, snap: snap}, nil
}

type fakeCapture struct {
	f    *fakeRasterizer
	snap *Snapshot
}

func (c *fakeCapture) ContentHeight() int { return c.f.height }

func (c *fakeCapture) Rasterize(ctx context.Context, scale float64) (image.Image, error) {
	if c.f.block != nil {
		select {
		case <-c.f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.f.rasterErr != nil {
		return nil, c.f.rasterErr
	}
	s := scale
	if tr := c.snap.Document().Root.Style["transform"]; strings.HasPrefix(tr, "scale(") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimPrefix(tr, "scale("), ")"), 64)
		if err == nil {
			s *= v
		}
	}
	w := int(math.Round(float64(c.snap.Width()) * s))
	h := int(math.Round(float64(c.f.height) * s))
	return image.NewNRGBA(image.Rect(0, 0, w, h)), nil
}

func (c *fakeCapture) Close() error {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	c.f.closed++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleDoc() *document.Document {
	d := resume.Default()
	d.PersonalInfo.FullName = "Jane Doe"
	d.Skills = []string{"Go"}
	return render.Render(d, templates.Lookup("modern-01"), nil)
}

func TestExportIgnoresLeakedPreviewScale(t *testing.T) {
	doc := sampleDoc()
	doc.Root.Style["transform"] = "scale(0.5)"
	doc.Root.Style["transform-origin"] = "top left"

	fr := &fakeRasterizer{height: document.CanonicalHeight}
	art, err := NewExporter(fr, testLogger()).ExportImage(context.Background(), doc, "cv", QualityMedium)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if art.PixelWidth != 1588 || art.PixelHeight != 2246 {
		t.Fatalf("expected 1588x2246 got %dx%d", art.PixelWidth, art.PixelHeight)
	}
	got := float64(art.PixelHeight) / float64(art.PixelWidth)
	want := float64(document.CanonicalHeight) / float64(document.CanonicalWidth)
	if math.Abs(got-want) > 1e-3 {
		t.Fatalf("aspect ratio %v differs from canonical %v", got, want)
	}
	if doc.Root.Style["transform"] != "scale(0.5)" {
		t.Fatal("export must work on a clone, not the caller's document")
	}
	if !strings.Contains(fr.snaps[0].HTML(), "transform:none !important") {
		t.Fatal("snapshot html lacks the strip-transform rule")
	}
}

func TestExportImageIsOpaqueWhitePNG(t *testing.T) {
	fr := &fakeRasterizer{height: 1200}
	art, err := NewExporter(fr, testLogger()).ExportImage(context.Background(), sampleDoc(), "", QualityLow)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if art.Filename != "resume.png" || art.ContentType != "image/png" || art.Pages != 1 {
		t.Fatalf("unexpected artifact %+v", art)
	}
	img, err := png.Decode(bytes.NewReader(art.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 794 || img.Bounds().Dy() != 1200 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	r, g, b, a := img.At(10, 10).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Fatalf("expected opaque white, got %d %d %d %d", r, g, b, a)
	}
	if fr.closed != 1 {
		t.Fatalf("capture must be closed once, closed %d", fr.closed)
	}
}

func TestQualityScalesPixels(t *testing.T) {
	for q, width := range map[Quality]int{QualityLow: 794, QualityMedium: 1588, QualityHigh: 3176} {
		fr := &fakeRasterizer{height: 100}
		art, err := NewExporter(fr, testLogger()).ExportImage(context.Background(), sampleDoc(), "x.png", q)
		if err != nil {
			t.Fatalf("%s: %v", q, err)
		}
		if art.PixelWidth != width || art.PixelHeight != int(100*q.Scale()) {
			t.Fatalf("%s: got %dx%d", q, art.PixelWidth, art.PixelHeight)
		}
		if art.Filename != "x.png" {
			t.Fatalf("%s: filename %q", q, art.Filename)
		}
	}
}

func TestExportPDFPageCounts(t *testing.T) {
	cases := map[int]int{
		document.CanonicalHeight:        1,
		400:                             1,
		2000:                            2,
		document.CanonicalHeight * 3:    3,
		document.CanonicalHeight*3 + 40: 4,
	}
	for height, pages := range cases {
		fr := &fakeRasterizer{height: height}
		art, err := NewExporter(fr, testLogger()).ExportPDF(context.Background(), sampleDoc(), "Jane Doe CV", QualityLow)
		if err != nil {
			t.Fatalf("height %d: %v", height, err)
		}
		if art.Pages != pages {
			t.Fatalf("height %d: expected %d pages got %d", height, pages, art.Pages)
		}
		if art.Filename != "Jane Doe CV.pdf" || art.ContentType != "application/pdf" {
			t.Fatalf("unexpected artifact %+v", art)
		}
		if !bytes.HasPrefix(art.Data, []byte("%PDF-")) {
			t.Fatal("output is not a pdf")
		}
	}
}

func TestPlanPagesCoversContent(t *testing.T) {
	for h := 1; h <= 6000; h += 97 {
		heightMm, pages := PlanPages(794, h)
		want := int(math.Ceil((heightMm - pageTolerance) / PageHeightMm))
		if want < 1 {
			want = 1
		}
		if len(pages) != want {
			t.Fatalf("h=%d: expected %d pages got %d", h, want, len(pages))
		}

		covered := 0.0
		for i, p := range pages {
			if p.TopMm != covered {
				t.Fatalf("h=%d: gap before page %d (%v != %v)", h, i, p.TopMm, covered)
			}
			if p.OffsetMm != -float64(i)*PageHeightMm {
				t.Fatalf("h=%d: page %d offset %v", h, i, p.OffsetMm)
			}
			covered = p.BottomMm
		}
		if math.Abs(covered-heightMm) > 1e-9 {
			t.Fatalf("h=%d: covered %v of %v mm", h, covered, heightMm)
		}
		last := pages[len(pages)-1]
		if overlap := last.TopMm + PageHeightMm - heightMm; overlap >= PageHeightMm {
			t.Fatalf("h=%d: final page is entirely blank", h)
		}
	}

	if _, pages := PlanPages(0, 10); pages != nil {
		t.Fatal("degenerate bitmap has no pages")
	}
}

func TestPlanPagesCanonicalBoundary(t *testing.T) {
	cases := []struct {
		w, h  int
		pages int
	}{
		{794, 1123, 1},
		{1588, 2246, 1},
		{794, 1124, 2},
		{794, 2246, 2},
		{794, 2247, 3},
	}
	for _, tc := range cases {
		if _, pages := PlanPages(tc.w, tc.h); len(pages) != tc.pages {
			t.Fatalf("%dx%d: expected %d pages, got %d", tc.w, tc.h, tc.pages, len(pages))
		}
	}
}

func TestNilDocumentIsNoop(t *testing.T) {
	fr := &fakeRasterizer{height: 100}
	e := NewExporter(fr, testLogger())
	for _, f := range []Format{FormatPNG, FormatPDF} {
		art, err := e.Export(context.Background(), nil, "x", f, QualityHigh)
		if art != nil || err != nil {
			t.Fatalf("%s: expected no-op, got %v %v", f, art, err)
		}
	}
	if fr.prepared != 0 {
		t.Fatal("rasterizer must not be touched for a nil document")
	}
}

func TestRasterizeFailuresPropagate(t *testing.T) {
	boom := errors.New("tainted canvas")

	fr := &fakeRasterizer{height: 100, prepareErr: boom}
	_, err := NewExporter(fr, testLogger()).ExportPDF(context.Background(), sampleDoc(), "x", QualityLow)
	if !errors.Is(err, ErrRasterize) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped prepare error, got %v", err)
	}

	fr = &fakeRasterizer{height: 100, rasterErr: boom}
	_, err = NewExporter(fr, testLogger()).ExportImage(context.Background(), sampleDoc(), "x", QualityLow)
	if !errors.Is(err, ErrRasterize) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped capture error, got %v", err)
	}
	if fr.closed != 1 {
		t.Fatal("capture must be closed after a failed rasterize")
	}
}

func TestTaskCancel(t *testing.T) {
	fr := &fakeRasterizer{height: 100, block: make(chan struct{})}
	task := NewExporter(fr, testLogger()).Start(context.Background(), sampleDoc(), "x", FormatPNG, QualityLow)
	task.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	art, err := task.Wait(ctx)
	if art != nil || !errors.Is(err, context.Canceled) || !errors.Is(err, ErrRasterize) {
		t.Fatalf("expected cancellation, got %v %v", art, err)
	}
	select {
	case <-task.Done():
	default:
		t.Fatal("done must be closed after Wait returns")
	}
}

func TestTaskCompletes(t *testing.T) {
	fr := &fakeRasterizer{height: 100}
	task := NewExporter(fr, testLogger()).Start(context.Background(), sampleDoc(), "cv.PDF", FormatPDF, QualityLow)
	art, err := task.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if art.Filename != "cv.PDF" || art.Pages != 1 {
		t.Fatalf("unexpected artifact %+v", art)
	}
}

func TestEnsureExtension(t *testing.T) {
	cases := []struct {
		in   string
		f    Format
		want string
	}{
		{"resume", FormatPDF, "resume.pdf"},
		{"resume.pdf", FormatPDF, "resume.pdf"},
		{"Resume.PNG", FormatPNG, "Resume.PNG"},
		{"resume.png", FormatPDF, "resume.png.pdf"},
		{"", FormatPNG, "resume.png"},
		{"   ", FormatPDF, "resume.pdf"},
		{"../../etc/cv", FormatPDF, "cv.pdf"},
		{`C:\docs\cv`, FormatPNG, "cv.png"},
	}
	for _, c := range cases {
		if got := EnsureExtension(c.in, c.f); got != c.want {
			t.Fatalf("EnsureExtension(%q, %s) = %q want %q", c.in, c.f, got, c.want)
		}
	}
}

func TestParseQualityAndFormat(t *testing.T) {
	if ParseQuality("HIGH") != QualityHigh || ParseQuality("ultra") != QualityMedium || ParseQuality("") != QualityMedium {
		t.Fatal("unexpected quality parsing")
	}
	if QualityLow.DPI() != 72 || QualityHigh.DPI() != 300 {
		t.Fatal("unexpected dpi labels")
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatal("gif is not an export format")
	}
}

func TestSnapshotRejectsEmptyDocument(t *testing.T) {
	if _, err := NewSnapshot(nil); err == nil {
		t.Fatal("expected error")
	}
	if _, err := NewSnapshot(&document.Document{}); err == nil {
		t.Fatal("expected error")
	}
}
