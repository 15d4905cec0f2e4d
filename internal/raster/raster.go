// Package raster provides headless-Chromium implementations of export.Rasterizer.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"strings"
	"time"

	"resumeStudio/internal/export"
)

const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// Options 是两个引擎共用的浏览器参数。
type Options struct {
	ChromePath     string
	PrepareTimeout time.Duration
	CaptureTimeout time.Duration
	// IdleTimeout 是等待网络与主线程空闲的上限，超时不算失败。
	IdleTimeout time.Duration
	Logger      *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.PrepareTimeout <= 0 {
		o.PrepareTimeout = 30 * time.Second
	}
	if o.CaptureTimeout <= 0 {
		o.CaptureTimeout = 60 * time.Second
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = 2 * time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// New returns the rasterizer for engine ("rod" or "chromedp"; empty means rod).
func New(engine string, opts Options) (export.Rasterizer, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineRod:
		return NewRod(opts), nil
	case EngineChromedp:
		return NewChromedp(opts), nil
	}
	return nil, fmt.Errorf("unknown render engine %q", engine)
}

// settleExpr resolves once the page is loaded, fonts and images are ready and
// two animation frames have passed.
const settleExpr = `new Promise((resolve) => {
  const settle = () => {
    const fonts = (document.fonts && document.fonts.ready)
      ? Promise.race([document.fonts.ready, new Promise((r) => setTimeout(r, 3000))])
      : Promise.resolve();
    const images = Promise.all(Array.from(document.images).map((img) =>
      img.complete ? null : new Promise((r) => { img.onload = r; img.onerror = r; })));
    Promise.all([fonts, images]).then(() =>
      requestAnimationFrame(() => requestAnimationFrame(() => resolve(true))));
  };
  if (document.readyState === 'complete') settle();
  else window.addEventListener('load', settle, { once: true });
})`

// framesExpr waits two animation frames; used after the device metrics change.
const framesExpr = `new Promise((resolve) => requestAnimationFrame(() => requestAnimationFrame(() => resolve(true))))`

// measureExpr returns the root height in CSS pixels.
const measureExpr = `Math.ceil(document.getElementById('resume-root').getBoundingClientRect().height)`

func asFunc(expr string) string {
	return "() => " + expr
}

func decodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

func canonicalHeight(h int) int {
	if h < 1 {
		return 1
	}
	return h
}
