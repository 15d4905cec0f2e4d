package render

import (
	"regexp"
	"strings"

	"resumeStudio/internal/document"
)

var leadingGlyph = regexp.MustCompile(`^[•▸\-]\s*`)

// SplitBullets 将多行描述拆成要点：按换行拆分、丢弃空行，并去掉原文里已有的项目符号，避免重复。
func SplitBullets(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = leadingGlyph.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func bulletRows(text string, t theme) *document.Node {
	lines := SplitBullets(text)
	if len(lines) == 0 {
		return nil
	}
	box := document.Box("bullets", st("margin-top", "4px"))
	for _, line := range lines {
		box.Append(document.Para("bullet", "", with(textXS(gray600),
			"display", "flex",
			"align-items", "flex-start",
			"gap", "6px",
			"line-height", "1.625",
		),
			document.Text("glyph", "▸", st("color", t.accent, "flex-shrink", "0")),
			document.Text("bullet-text", line, nil),
		))
	}
	return box
}
