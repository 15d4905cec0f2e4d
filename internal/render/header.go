package render

import (
	"strconv"

	"resumeStudio/internal/document"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/templates"
)

const (
	fallbackName  = "Your Name"
	fallbackTitle = "Job Title"
)

type headerFunc func(p resume.PersonalInfo, t theme) *document.Node

var headerStrategies = map[templates.HeaderStyle]headerFunc{
	templates.HeaderCentered: centeredHeader,
	templates.HeaderLeft:     leftHeader,
	templates.HeaderBanner:   bannerHeader,
	templates.HeaderCompact:  compactHeader,
	templates.HeaderBold:     boldHeader,
}

func header(style templates.HeaderStyle, p resume.PersonalInfo, t theme) *document.Node {
	fn, ok := headerStrategies[style]
	if !ok {
		fn = centeredHeader
	}
	return fn(p, t)
}

type contactField struct {
	kind  string
	glyph string
	value string
}

// contactFields 按固定顺序列出非空联系方式；compact 页眉只取前三项。
func contactFields(p resume.PersonalInfo) []contactField {
	all := []contactField{
		{"email", "✉", p.Email},
		{"phone", "☎", p.Phone},
		{"location", "⌖", p.Location},
		{"website", "⊕", p.Website},
		{"linkedin", "in", p.LinkedIn},
		{"github", "⌥", p.GitHub},
		{"portfolio", "◆", p.Portfolio},
	}
	out := all[:0]
	for _, f := range all {
		if f.value != "" {
			out = append(out, f)
		}
	}
	return out
}

func contactItem(f contactField, style map[string]string, glyphColor string) *document.Node {
	glyphStyle := st("font-size", "10px")
	if glyphColor != "" {
		glyphStyle["color"] = glyphColor
	}
	return document.Box("contact", with(style, "display", "flex", "align-items", "center", "gap", "4px"),
		document.Text("contact-glyph", f.glyph, glyphStyle),
		document.Text("contact-"+f.kind, f.value, nil),
	)
}

// contactRow lays contacts out inline; justify is a flex justify-content value.
func contactRow(p resume.PersonalInfo, justify, color string) *document.Node {
	fields := contactFields(p)
	if len(fields) == 0 {
		return nil
	}
	row := document.Box("contact-row", st(
		"display", "flex",
		"flex-wrap", "wrap",
		"justify-content", justify,
		"gap", "12px",
		"margin-top", "8px",
		"font-size", "12px",
		"color", color,
	))
	for _, f := range fields {
		row.Append(contactItem(f, nil, ""))
	}
	return row
}

func photoCircle(src string, size int, border string) *document.Node {
	if src == "" {
		return nil
	}
	px := strconv.Itoa(size) + "px"
	return document.Box("photo", st(
		"width", px,
		"height", px,
		"border-radius", "50%",
		"overflow", "hidden",
		"border", "3px solid "+border,
		"flex-shrink", "0",
		"background-color", "#e2e8f0",
	),
		document.Image("photo-img", src, st("width", "100%", "height", "100%", "object-fit", "cover")),
	)
}

func photoJustify(pos resume.PhotoPosition) string {
	switch pos.Normalize() {
	case resume.PhotoLeft:
		return "flex-start"
	case resume.PhotoRight:
		return "flex-end"
	default:
		return "center"
	}
}

func nameOr(p resume.PersonalInfo) string {
	if p.FullName != "" {
		return p.FullName
	}
	return fallbackName
}

func titleOr(p resume.PersonalInfo) string {
	if p.Title != "" {
		return p.Title
	}
	return fallbackTitle
}

func nameNode(p resume.PersonalInfo, size, weight, color string) *document.Node {
	return document.Heading(1, "name", nameOr(p), st(
		"font-size", size,
		"font-weight", weight,
		"color", color,
		"line-height", "1.2",
	))
}

func titleNode(p resume.PersonalInfo, size string, style map[string]string) *document.Node {
	return document.Para("title", titleOr(p), with(style, "font-size", size, "margin-top", "2px"))
}

func centeredHeader(p resume.PersonalInfo, t theme) *document.Node {
	var photo *document.Node
	if p.Photo != "" {
		photo = document.Box("photo-row", st(
			"display", "flex",
			"justify-content", photoJustify(p.PhotoPosition),
			"margin-bottom", "12px",
		), photoCircle(p.Photo, 72, t.accent))
	}
	return document.Box("header", st(
		"text-align", "center",
		"padding-bottom", "16px",
		"margin-bottom", "16px",
		"border-bottom", "2px solid "+t.accent,
	),
		photo,
		nameNode(p, "24px", "700", gray900),
		titleNode(p, "14px", st("font-weight", "500", "color", t.accent)),
		contactRow(p, "center", gray500),
	)
}

func leftHeader(p resume.PersonalInfo, t theme) *document.Node {
	return document.Box("header", st(
		"padding-bottom", "16px",
		"margin-bottom", "16px",
		"border-bottom", "2px solid "+t.accent,
	),
		document.Box("", st("display", "flex", "align-items", "flex-start", "gap", "16px"),
			photoCircle(p.Photo, 72, t.accent),
			document.Box("", st("flex", "1"),
				nameNode(p, "24px", "700", gray900),
				titleNode(p, "14px", st("font-weight", "500", "color", t.accent)),
				contactRow(p, "flex-start", gray500),
			),
		),
	)
}

func bannerHeader(p resume.PersonalInfo, t theme) *document.Node {
	return document.Box("header", st(
		"padding", "24px",
		"color", white,
		"background-color", t.accent,
	),
		document.Box("", st("display", "flex", "align-items", "center", "gap", "16px"),
			photoCircle(p.Photo, 64, "rgba(255,255,255,0.6)"),
			document.Box("",
				nil,
				nameNode(p, "24px", "700", white),
				titleNode(p, "14px", st("opacity", "0.9")),
				contactRow(p, "flex-start", "rgba(255,255,255,0.85)"),
			),
		),
	)
}

func gradientBar(accent string) *document.Node {
	return document.Box("header-bar", st(
		"height", "4px",
		"margin-top", "12px",
		"border-radius", "9999px",
		"background", "linear-gradient(to right, "+accent+", transparent)",
	))
}

func boldHeader(p resume.PersonalInfo, t theme) *document.Node {
	pos := p.PhotoPosition.Normalize()
	box := document.Box("header", st("padding-bottom", "16px", "margin-bottom", "16px"))

	if pos == resume.PhotoCenter || pos == resume.PhotoRight {
		align, justify := "center", "center"
		if pos == resume.PhotoRight {
			align, justify = "right", "flex-end"
		}
		var photo *document.Node
		if p.Photo != "" {
			photo = document.Box("photo-row", st(
				"display", "flex",
				"justify-content", photoJustify(pos),
				"margin-bottom", "12px",
			), photoCircle(p.Photo, 68, t.accent))
		}
		return box.Append(
			photo,
			document.Box("", st("text-align", align),
				nameNode(p, "30px", "900", gray900),
				titleNode(p, "16px", st("font-weight", "600", "color", t.accent)),
				contactRow(p, justify, gray500),
			),
			gradientBar(t.accent),
		)
	}

	contacts := document.Box("contact-column", with(textXS(gray500),
		"text-align", "right",
		"flex-shrink", "0",
		"display", "flex",
		"flex-direction", "column",
		"gap", "2px",
	))
	for _, f := range contactFields(p) {
		contacts.Append(contactItem(f, st("justify-content", "flex-end"), ""))
	}
	return box.Append(
		document.Box("", st("display", "flex", "align-items", "flex-start", "justify-content", "space-between", "gap", "16px"),
			document.Box("", st("display", "flex", "align-items", "center", "gap", "12px"),
				photoCircle(p.Photo, 68, t.accent),
				document.Box("", nil,
					nameNode(p, "30px", "900", gray900),
					titleNode(p, "16px", st("font-weight", "600", "color", t.accent)),
				),
			),
			contacts,
		),
		gradientBar(t.accent),
	)
}

func compactHeader(p resume.PersonalInfo, t theme) *document.Node {
	contacts := document.Box("contact-column", with(textXS(gray500),
		"text-align", "right",
		"display", "flex",
		"flex-direction", "column",
		"gap", "2px",
	))
	fields := contactFields(p)
	for _, f := range fields {
		switch f.kind {
		case "email", "phone", "location":
			contacts.Append(document.Box("contact", nil, document.Text("contact-"+f.kind, f.value, nil)))
		}
	}
	return document.Box("header", st(
		"display", "flex",
		"align-items", "center",
		"justify-content", "space-between",
		"padding-bottom", "12px",
		"margin-bottom", "12px",
		"border-bottom", "1px solid "+t.accent,
	),
		document.Box("", st("display", "flex", "align-items", "center", "gap", "12px"),
			photoCircle(p.Photo, 44, t.accent),
			document.Box("", nil,
				nameNode(p, "18px", "700", gray900),
				titleNode(p, "12px", st("font-weight", "500", "color", t.accent)),
			),
		),
		contacts,
	)
}

// panelHeader 是侧栏布局遇到 banner 页眉时，压缩进侧栏顶部的名字与职位。
func panelHeader(p resume.PersonalInfo, t theme) *document.Node {
	nameColor, titleColor := "#1e293b", t.accent
	if t.dark {
		nameColor, titleColor = white, "rgba(255,255,255,0.7)"
	}
	return document.Box("panel-header", st("margin-bottom", "20px"),
		nameNode(p, "18px", "700", nameColor),
		titleNode(p, "12px", st("color", titleColor)),
	)
}
