package render

import (
	"strconv"

	"resumeStudio/internal/document"
	"resumeStudio/internal/resume"
)

// sidebarPalette 是侧栏的配色；深色侧栏以主题色为底、白字。
type sidebarPalette struct {
	background string
	text       string
	muted      string
	heading    string
	photo      string
}

func paletteFor(t theme) sidebarPalette {
	if t.dark {
		return sidebarPalette{
			background: t.accent,
			text:       white,
			muted:      "rgba(255,255,255,0.7)",
			heading:    "rgba(255,255,255,0.6)",
			photo:      "rgba(255,255,255,0.5)",
		}
	}
	return sidebarPalette{
		background: "#f1f5f9",
		text:       gray700,
		muted:      gray500,
		heading:    t.accent,
		photo:      t.accent,
	}
}

func panelHeading(label string, pal sidebarPalette) *document.Node {
	return document.Heading(4, "heading-label", label, with(headingLabel, "color", pal.heading, "margin-bottom", "8px"))
}

// sidePanel 渲染侧栏：头像、联系方式、技能、教育、语言与证书。技能在侧栏里固定用列表样式。
func sidePanel(d resume.Data, p Plan, t theme) *document.Node {
	pal := paletteFor(t)
	panel := document.Box("side-panel", st(
		"width", strconv.Itoa(p.Side.WidthPct)+"%",
		"flex-shrink", "0",
		"padding", "20px",
		"background-color", pal.background,
		"display", "flex",
		"flex-direction", "column",
		"gap", "20px",
	))

	if p.HeaderInPanel {
		panel.Append(panelHeader(d.PersonalInfo, t))
	}
	if d.PersonalInfo.Photo != "" {
		panel.Append(document.Box("photo-row", st("display", "flex", "justify-content", "center", "margin-bottom", "4px"),
			photoCircle(d.PersonalInfo.Photo, 80, pal.photo),
		))
	}

	contacts := document.Box("", with(textXS(pal.muted), "display", "flex", "flex-direction", "column", "gap", "6px"))
	for _, f := range contactFields(d.PersonalInfo) {
		contacts.Append(contactItem(f, st("word-break", "break-all"), t.accent))
	}
	panel.Append(document.Box("panel:contact", nil, panelHeading("Contact", pal), contacts))

	if len(d.Skills) > 0 {
		panel.Append(document.Box("panel:skills", nil,
			panelHeading("Skills", pal),
			glyphList("skill-list", "skill", d.Skills, t.accent, pal.text),
		))
	}

	if len(d.Education) > 0 {
		box := document.Box("panel:education", nil, panelHeading("Education", pal))
		for _, e := range d.Education {
			box.Append(document.Box("entry", with(textXS(pal.text), "margin-bottom", "8px"),
				document.Para("entry-title", EducationTitle(e), st("font-weight", "600")),
				document.Para("entry-subtitle", e.School, st("color", pal.muted)),
				document.Para("entry-dates", DateRange(e.StartDate, e.EndDate), st("color", pal.muted)),
			))
		}
		panel.Append(box)
	}

	if len(d.Languages) > 0 {
		panel.Append(document.Box("panel:languages", nil,
			panelHeading("Languages", pal),
			glyphList("language-list", "language", d.Languages, t.accent, pal.text),
		))
	}

	if len(d.Certifications) > 0 {
		list := document.List("certifications", st("display", "flex", "flex-direction", "column", "gap", "4px"))
		for _, c := range d.Certifications {
			list.Append(certificationItem(c, t.accent, pal.text))
		}
		panel.Append(document.Box("panel:certifications", nil, panelHeading("Certifications", pal), list))
	}
	return panel
}
