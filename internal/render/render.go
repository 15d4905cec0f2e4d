// Package render turns resume data and a template descriptor into a canonical
// 794×1123 document tree. Rendering is pure: identical inputs always produce
// identical trees, and no input of the right type makes it fail.
package render

import (
	"resumeStudio/internal/document"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/templates"
)

// PlaceholderText 是空简历时唯一渲染的内容。
const PlaceholderText = "Start filling in your details to see the preview"

type skeletonFunc func(d resume.Data, p Plan, t theme) []*document.Node

var skeletons = map[templates.Layout]skeletonFunc{
	templates.LayoutSingle:       singleSkeleton,
	templates.LayoutSidebarLeft:  sidebarSkeleton,
	templates.LayoutSidebarRight: sidebarSkeleton,
	templates.LayoutTwoColumn:    twoColumnSkeleton,
}

// Render builds the document for data in the given template and section order.
func Render(data resume.Data, desc templates.Descriptor, order []resume.SectionType) *document.Document {
	return RenderPlan(data, Resolve(desc, order))
}

// RenderPlan renders an already resolved plan.
func RenderPlan(data resume.Data, p Plan) *document.Document {
	data = data.Normalize()
	t := newTheme(p)

	root := document.Box(document.RootID, st(
		"width", "794px",
		"min-height", "1123px",
		"background-color", white,
		"font-family", t.font,
		"font-size", "14px",
		"color", gray900,
		"overflow", "hidden",
		"position", "relative",
	))

	if data.IsEmpty() {
		root.Append(placeholder())
	} else {
		fn, ok := skeletons[p.Skeleton]
		if !ok {
			fn = singleSkeleton
		}
		root.Append(fn(data, p, t)...)
	}

	return &document.Document{
		Width:      document.CanonicalWidth,
		Height:     document.CanonicalHeight,
		FontFamily: t.font,
		TemplateID: p.Template.ID,
		Root:       root,
	}
}

func placeholder() *document.Node {
	return document.Box("placeholder", st(
		"display", "flex",
		"flex-direction", "column",
		"align-items", "center",
		"justify-content", "center",
		"padding", "64px 0",
		"color", "#d1d5db",
	),
		document.Text("placeholder-icon", "▤", st("font-size", "48px", "opacity", "0.3", "margin-bottom", "12px")),
		document.Para("placeholder-text", PlaceholderText, st("font-size", "14px")),
	)
}

// singleSkeleton: banner 页眉通栏铺满，其余页眉与正文同在 32px 内边距中。
func singleSkeleton(d resume.Data, p Plan, t theme) []*document.Node {
	if p.Header == templates.HeaderBanner {
		return []*document.Node{
			header(p.Header, d.PersonalInfo, t),
			document.Box("body", st("padding", "24px"), sectionStack("main", d, p.Main, t)),
		}
	}
	return []*document.Node{
		document.Box("body", st("padding", "32px"),
			header(p.Header, d.PersonalInfo, t),
			sectionStack("main", d, p.Main, t),
		),
	}
}

func sidebarSkeleton(d resume.Data, p Plan, t theme) []*document.Node {
	if p.Side == nil {
		panel := panels[p.Skeleton]
		p.Side = &panel
	}
	main := document.Box("main-panel", st("flex", "1", "padding", "24px", "min-width", "0"))
	if !p.HeaderInPanel {
		main.Append(header(p.Header, d.PersonalInfo, t))
	}
	main.Append(sectionStack("main", d, p.Main, t))

	side := sidePanel(d, p, t)
	row := document.Box("panels", st("display", "flex", "min-height", "1123px"))
	if p.Side.Left {
		row.Append(side, main)
	} else {
		row.Append(main, side)
	}
	return []*document.Node{row}
}

func twoColumnSkeleton(d resume.Data, p Plan, t theme) []*document.Node {
	grid := document.Box("columns", st(
		"display", "grid",
		"grid-template-columns", "1fr 1fr",
		"gap", "24px",
		"margin-top", "8px",
	),
		sectionStack("column-a", d, p.BucketA, t),
		sectionStack("column-b", d, p.BucketB, t),
	)
	if p.Header == templates.HeaderBanner {
		return []*document.Node{
			header(p.Header, d.PersonalInfo, t),
			document.Box("body", st("padding", "24px"), grid),
		}
	}
	return []*document.Node{
		document.Box("body", st("padding", "32px"),
			header(p.Header, d.PersonalInfo, t),
			grid,
		),
	}
}
