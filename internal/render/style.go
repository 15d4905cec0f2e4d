package render

import (
	"resumeStudio/internal/document"
	"resumeStudio/internal/templates"
)

// 常用灰阶，与预览端保持一致。
const (
	gray900 = "#111827"
	gray800 = "#1f2937"
	gray700 = "#374151"
	gray600 = "#4b5563"
	gray500 = "#6b7280"
	gray400 = "#9ca3af"
	gray200 = "#e5e7eb"
	white   = "#fff"
)

const defaultFontStack = "'Inter', sans-serif"

var fontStacks = map[string]string{
	"Plus Jakarta Sans": "'Plus Jakarta Sans', sans-serif",
	"Inter":             "'Inter', sans-serif",
	"Outfit":            "'Outfit', sans-serif",
	"Poppins":           "'Poppins', sans-serif",
	"Arial":             "'Arial', sans-serif",
}

// FontStack maps a template font token to a CSS font-family value.
func FontStack(token string) string {
	if s, ok := fontStacks[token]; ok {
		return s
	}
	return defaultFontStack
}

type theme struct {
	accent  string
	font    string
	heading templates.HeadingStyle
	skill   templates.SkillStyle
	dark    bool
}

func newTheme(p Plan) theme {
	return theme{
		accent:  p.Template.AccentColor,
		font:    FontStack(p.Template.FontFamily),
		heading: p.Heading,
		skill:   p.Skill,
		dark:    p.Template.DarkSidebar,
	}
}

// st builds a style map from key/value pairs.
func st(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func with(base map[string]string, kv ...string) map[string]string {
	m := make(map[string]string, len(base)+len(kv)/2)
	for k, v := range base {
		m[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func textXS(color string) map[string]string {
	return st("font-size", "12px", "line-height", "16px", "color", color)
}

// WebFontStylesheets returns the stylesheet links for the template fonts.
// With no descriptor it covers every font used by the catalog.
func WebFontStylesheets(descs ...templates.Descriptor) []string {
	if len(descs) == 0 {
		descs = templates.All()
	}
	seen := map[string]bool{}
	var out []string
	for _, d := range descs {
		href := document.FontStylesheet(d.FontFamily)
		if href == "" || seen[href] {
			continue
		}
		seen[href] = true
		out = append(out, href)
	}
	return out
}
