package export

import (
	"fmt"

	"resumeStudio/internal/document"
)

// stripTransformCSS 强制根节点回到 1:1 画布几何，抵消任何外层缩放。
const stripTransformCSS = `#resume-root{` +
	`transform:none !important;` +
	`width:794px !important;` +
	`margin:0 !important;` +
	`padding:0 !important;` +
	`background:#fff !important}` +
	`body{width:794px}`

// Snapshot 是导出专用的离屏副本。
// 只能通过 NewSnapshot 构造，且不携带任何缩放信息：导出永远在未缩放的副本上进行。
type Snapshot struct {
	doc  *document.Document
	html string
}

// NewSnapshot deep-clones doc and serializes the clone as an off-screen page
// with every transform stripped from the root.
func NewSnapshot(doc *document.Document, stylesheets ...string) (*Snapshot, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("snapshot: empty document")
	}
	clone := doc.Clone()
	if clone.Root.Style == nil {
		clone.Root.Style = map[string]string{}
	}
	clone.Root.Style["transform"] = "none"
	clone.Root.Style["width"] = fmt.Sprintf("%dpx", document.CanonicalWidth)
	clone.Root.Style["margin"] = "0"
	clone.Root.Style["padding"] = "0"
	delete(clone.Root.Style, "transform-origin")
	clone.Width = document.CanonicalWidth

	html, err := document.RenderHTML(clone, document.ShellOptions{
		Title:       "Resume export",
		ExtraCSS:    stripTransformCSS,
		Stylesheets: stylesheets,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return &Snapshot{doc: clone, html: html}, nil
}

// HTML is the full off-screen page.
func (s *Snapshot) HTML() string {
	return s.html
}

// Document returns the snapshot's own clone. Callers must treat it as read-only.
func (s *Snapshot) Document() *document.Document {
	return s.doc
}

// Width is always the canonical width.
func (s *Snapshot) Width() int {
	return document.CanonicalWidth
}
