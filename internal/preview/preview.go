// Package preview shows a canonical document inside a container of any width.
// Scaling is visual only: the document tree is never modified.
package preview

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"resumeStudio/internal/document"
)

// MinScale 是容器宽度异常（0 或负数）时的下限，避免出现 0 倍缩放。
const MinScale = 0.1

// ComputeScale returns min(containerWidth, maxWidth) / 794.
// maxWidth <= 0 means no upper bound.
func ComputeScale(containerWidth, maxWidth float64) float64 {
	w := containerWidth
	if maxWidth > 0 && maxWidth < w {
		w = maxWidth
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 1
	}
	s := w / document.CanonicalWidth
	if s < MinScale {
		return MinScale
	}
	return s
}

// Unscale converts a measurement taken on the scaled preview back to canonical units.
func Unscale(px, scale float64) float64 {
	if scale <= 0 {
		return px
	}
	return px / scale
}

// Frame 持有文档与当前缩放比例。
// EffectiveHeight 是给外层滚动容器用的高度：未缩放内容高度乘以缩放比例。
type Frame struct {
	doc      *document.Document
	maxWidth float64

	Scale           float64
	ContentHeight   float64
	EffectiveHeight float64
}

// NewFrame wraps doc for display in a container of the given width.
func NewFrame(doc *document.Document, containerWidth, maxWidth float64) *Frame {
	f := &Frame{doc: doc, maxWidth: maxWidth}
	if doc != nil {
		f.ContentHeight = float64(doc.Height)
	}
	f.Resize(containerWidth)
	return f
}

// Document returns the wrapped canonical document.
func (f *Frame) Document() *document.Document {
	return f.doc
}

// Resize recomputes the scale for a new container width.
func (f *Frame) Resize(containerWidth float64) {
	f.Scale = ComputeScale(containerWidth, f.maxWidth)
	f.EffectiveHeight = f.ContentHeight * f.Scale
}

// SetContentHeight records the measured unscaled height; values below the
// canonical page height are raised to it, since the page has a minimum height.
func (f *Frame) SetContentHeight(h float64) {
	if h < document.CanonicalHeight {
		h = document.CanonicalHeight
	}
	f.ContentHeight = h
	f.EffectiveHeight = h * f.Scale
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// WriteHTML writes the scaled preview page.
func (f *Frame) WriteHTML(w io.Writer, stylesheets ...string) error {
	if f.doc == nil {
		return fmt.Errorf("preview: no document")
	}
	return document.WriteHTML(w, f.doc, document.ShellOptions{
		Title: "Resume preview",
		RootStyle: map[string]string{
			"transform":        "scale(" + strconv.FormatFloat(f.Scale, 'f', -1, 64) + ")",
			"transform-origin": "top left",
		},
		FrameStyle: map[string]string{
			"width":    px(float64(document.CanonicalWidth) * f.Scale),
			"height":   px(f.EffectiveHeight),
			"overflow": "hidden",
		},
		Stylesheets: stylesheets,
	})
}
