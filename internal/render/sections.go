package render

import (
	"strings"

	"resumeStudio/internal/document"
	"resumeStudio/internal/resume"
)

// 缺省占位文案。
const (
	fallbackPosition     = "Position"
	fallbackCompany      = "Company"
	fallbackProject      = "Project Name"
	fallbackActivity     = "Activity"
	fallbackOrganization = "Organization"
)

// sectionFunc 返回 nil 表示该区块没有内容，不渲染。
type sectionFunc func(d resume.Data, t theme) *document.Node

var sectionRenderers = map[resume.SectionType]sectionFunc{
	resume.SectionSummary:         summarySection,
	resume.SectionExperience:      experienceSection,
	resume.SectionProjects:        projectsSection,
	resume.SectionEducation:       educationSection,
	resume.SectionExtracurricular: extracurricularSection,
	resume.SectionSkills:          skillsSection,
	resume.SectionLanguages:       languagesSection,
	resume.SectionCertifications:  certificationsSection,
}

// sectionStack renders the sections of order top to bottom.
func sectionStack(role string, d resume.Data, order []resume.SectionType, t theme) *document.Node {
	box := document.Box(role, st("display", "flex", "flex-direction", "column", "gap", "20px"))
	for _, s := range order {
		fn, ok := sectionRenderers[s]
		if !ok {
			continue
		}
		box.Append(fn(d, t))
	}
	return box
}

func section(s resume.SectionType, label string, t theme, body ...*document.Node) *document.Node {
	return document.Box("section:"+string(s), nil, sectionHeading(label, t)).Append(body...)
}

func or(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// DateRange formats "start – end"; the separator only appears when end is set.
func DateRange(start, end string) string {
	if end == "" {
		return start
	}
	return start + " – " + end
}

func entryTitle(text string) *document.Node {
	return document.Para("entry-title", text, with(textXS(gray800), "font-weight", "600"))
}

func entrySubtitle(text string, t theme) *document.Node {
	return document.Para("entry-subtitle", text, with(textXS(t.accent), "font-weight", "500"))
}

func entryDates(text string) *document.Node {
	if text == "" {
		return nil
	}
	return document.Text("entry-dates", text, with(textXS(gray400),
		"white-space", "nowrap",
		"flex-shrink", "0",
		"margin-left", "8px",
	))
}

func entryTop(left *document.Node, dates string) *document.Node {
	return document.Box("", st("display", "flex", "justify-content", "space-between", "align-items", "flex-start"),
		left,
		entryDates(dates),
	)
}

func entryLink(href string, t theme) *document.Node {
	if href == "" {
		return nil
	}
	return document.Box("", st("margin-top", "4px"),
		document.Link("entry-link", href, "↗ "+href, with(textXS(t.accent), "display", "flex", "gap", "4px")),
	)
}

func entries(gap string) *document.Node {
	return document.Box("entries", st("display", "flex", "flex-direction", "column", "gap", gap))
}

func summarySection(d resume.Data, t theme) *document.Node {
	if strings.TrimSpace(d.Summary) == "" {
		return nil
	}
	return section(resume.SectionSummary, "Professional Summary", t,
		document.Para("summary", d.Summary, with(textXS(gray600), "line-height", "1.625", "white-space", "pre-line")),
	)
}

func experienceSection(d resume.Data, t theme) *document.Node {
	if len(d.Experience) == 0 {
		return nil
	}
	list := entries("12px")
	for _, e := range d.Experience {
		list.Append(document.Box("entry", nil,
			entryTop(document.Box("", nil,
				entryTitle(or(e.Position, fallbackPosition)),
				entrySubtitle(or(e.Company, fallbackCompany), t),
			), DateRange(e.StartDate, e.EndDate)),
			bulletRows(e.Description, t),
			entryLink(e.Link, t),
		))
	}
	return section(resume.SectionExperience, "Work Experience", t, list)
}

func projectsSection(d resume.Data, t theme) *document.Node {
	if len(d.Projects) == 0 {
		return nil
	}
	list := entries("12px")
	for _, pr := range d.Projects {
		title := document.Box("", st("display", "flex", "align-items", "center", "gap", "6px"),
			entryTitle(or(pr.Name, fallbackProject)),
		)
		if pr.URL != "" {
			title.Append(document.Link("project-url", pr.URL, "↗", with(textXS(t.accent), "font-size", "9px")))
		}
		var role *document.Node
		if pr.Role != "" {
			role = entrySubtitle(pr.Role, t)
		}
		list.Append(document.Box("entry", nil,
			entryTop(document.Box("", nil, title, role), DateRange(pr.StartDate, pr.EndDate)),
			bulletRows(pr.Description, t),
			entryLink(pr.Link, t),
		))
	}
	return section(resume.SectionProjects, "Projects", t, list)
}

// EducationTitle joins degree and field the way both panels display it.
func EducationTitle(e resume.Education) string {
	if e.Field == "" {
		return e.Degree
	}
	if e.Degree == "" {
		return "in " + e.Field
	}
	return e.Degree + " in " + e.Field
}

func educationSection(d resume.Data, t theme) *document.Node {
	if len(d.Education) == 0 {
		return nil
	}
	list := entries("8px")
	for _, e := range d.Education {
		list.Append(document.Box("entry", nil,
			entryTop(document.Box("", nil,
				entryTitle(EducationTitle(e)),
				document.Para("entry-subtitle", e.School, textXS(t.accent)),
			), DateRange(e.StartDate, e.EndDate)),
			entryLink(e.Link, t),
		))
	}
	return section(resume.SectionEducation, "Education", t, list)
}

func extracurricularSection(d resume.Data, t theme) *document.Node {
	if len(d.Extracurricular) == 0 {
		return nil
	}
	list := entries("12px")
	for _, ec := range d.Extracurricular {
		var role *document.Node
		if ec.Role != "" {
			role = document.Para("entry-role", ec.Role, textXS(gray600))
		}
		list.Append(document.Box("entry", nil,
			entryTop(document.Box("", nil,
				entryTitle(or(ec.Title, fallbackActivity)),
				entrySubtitle(or(ec.Organization, fallbackOrganization), t),
				role,
			), DateRange(ec.StartDate, ec.EndDate)),
			bulletRows(ec.Description, t),
			entryLink(ec.Link, t),
		))
	}
	return section(resume.SectionExtracurricular, "Extracurricular", t, list)
}

func skillsSection(d resume.Data, t theme) *document.Node {
	if len(d.Skills) == 0 {
		return nil
	}
	return section(resume.SectionSkills, "Skills", t, skillBlock(d.Skills, t))
}

func languagesSection(d resume.Data, t theme) *document.Node {
	if len(d.Languages) == 0 {
		return nil
	}
	row := document.Box("languages", st("display", "flex", "flex-wrap", "wrap", "gap", "12px"))
	for _, l := range d.Languages {
		row.Append(document.Text("language", l, textXS(gray700)))
	}
	return section(resume.SectionLanguages, "Languages", t, row)
}

func certificationsSection(d resume.Data, t theme) *document.Node {
	if len(d.Certifications) == 0 {
		return nil
	}
	list := document.List("certifications", st("display", "flex", "flex-direction", "column", "gap", "4px"))
	for _, c := range d.Certifications {
		list.Append(certificationItem(c, t.accent, gray700))
	}
	return section(resume.SectionCertifications, "Certifications", t, list)
}

func certificationItem(c resume.Certification, accent, color string) *document.Node {
	item := document.Item("certification", with(textXS(color), "display", "flex", "gap", "6px"),
		document.Text("glyph", "▸", st("color", accent)),
		document.Text("certification-label", c.Label(), nil),
	)
	if c.Link != "" {
		item.Append(document.Link("certification-link", c.Link, "↗", st("color", accent)))
	}
	return item
}
