package raster

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"resumeStudio/internal/document"
	"resumeStudio/internal/export"
	"resumeStudio/internal/render"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/templates"
)

func TestNewSelectsEngine(t *testing.T) {
	cases := map[string]any{
		"":          &Rod{},
		"rod":       &Rod{},
		" ChromeDP": &Chromedp{},
	}
	for name, want := range cases {
		r, err := New(name, Options{})
		if err != nil {
			t.Fatalf("%q: %v", name, err)
		}
		switch want.(type) {
		case *Rod:
			if _, ok := r.(*Rod); !ok {
				t.Fatalf("%q: expected rod, got %T", name, r)
			}
		case *Chromedp:
			if _, ok := r.(*Chromedp); !ok {
				t.Fatalf("%q: expected chromedp, got %T", name, r)
			}
		}
	}
	if _, err := New("webkit", Options{}); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{CaptureTimeout: time.Second}.withDefaults()
	if o.PrepareTimeout != 30*time.Second || o.CaptureTimeout != time.Second || o.IdleTimeout != 2*time.Second {
		t.Fatalf("unexpected defaults %+v", o)
	}
	if o.Logger == nil {
		t.Fatal("logger must default")
	}
}

func TestScriptsTargetRoot(t *testing.T) {
	if !strings.Contains(measureExpr, document.RootID) {
		t.Fatal("measure script must read the resume root")
	}
	if !strings.HasPrefix(asFunc(framesExpr), "() => new Promise") {
		t.Fatal("rod scripts must be function expressions")
	}
	if canonicalHeight(0) != 1 || canonicalHeight(1500) != 1500 {
		t.Fatal("unexpected height clamp")
	}
}

// 需要本机装有 Chromium，CI 上通常跳过。
func TestRodRendersCanonicalWidth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if _, ok := launcher.LookPath(); !ok {
		t.Skip("chromium not found")
	}

	d := resume.Default()
	d.PersonalInfo.FullName = "Jane Doe"
	d.Summary = "Backend engineer."
	doc := render.Render(d, templates.Lookup("minimal-01"), nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ex := export.NewExporter(NewRod(Options{Logger: logger}), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	art, err := ex.ExportImage(ctx, doc, "cv", export.QualityLow)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if art.PixelWidth != document.CanonicalWidth {
		t.Fatalf("expected width %d got %d", document.CanonicalWidth, art.PixelWidth)
	}
	if art.PixelHeight < document.CanonicalHeight {
		t.Fatalf("root min-height not honored: %d", art.PixelHeight)
	}
}
