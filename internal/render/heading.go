package render

import (
	"resumeStudio/internal/document"
	"resumeStudio/internal/templates"
)

type headingFunc func(label string, t theme) *document.Node

// headingStrategies 覆盖全部区块标题样式；underline 与 line 共用同一种呈现。
var headingStrategies = map[templates.HeadingStyle]headingFunc{
	templates.HeadingUnderline: ruledHeading,
	templates.HeadingLine:      ruledHeading,
	templates.HeadingFilled:    bandHeading,
	templates.HeadingDots:      dotHeading,
	templates.HeadingTag:       pillHeading,
	templates.HeadingNone:      plainHeading,
}

var headingLabel = st(
	"font-size", "12px",
	"line-height", "16px",
	"font-weight", "700",
	"text-transform", "uppercase",
	"letter-spacing", "0.1em",
)

func sectionHeading(label string, t theme) *document.Node {
	fn, ok := headingStrategies[t.heading]
	if !ok {
		fn = ruledHeading
	}
	return fn(label, t)
}

func ruledHeading(label string, t theme) *document.Node {
	return document.Box("heading", st("margin-bottom", "12px"),
		document.Heading(4, "heading-label", label, with(headingLabel,
			"color", t.accent,
			"padding-bottom", "4px",
			"border-bottom", "2px solid "+t.accent,
		)),
	)
}

func bandHeading(label string, t theme) *document.Node {
	return document.Box("heading", st(
		"display", "flex",
		"align-items", "center",
		"background-color", t.accent,
		"margin", "0 -16px 12px -16px",
		"padding", "4px 16px",
	),
		document.Heading(4, "heading-label", label, with(headingLabel, "color", white)),
	)
}

func dotHeading(label string, t theme) *document.Node {
	return document.Box("heading", st(
		"display", "flex",
		"align-items", "center",
		"gap", "8px",
		"margin-bottom", "12px",
	),
		document.Box("heading-dot", st(
			"width", "8px",
			"height", "8px",
			"border-radius", "9999px",
			"background-color", t.accent,
		)),
		document.Heading(4, "heading-label", label, with(headingLabel, "color", t.accent)),
		document.Box("heading-divider", st(
			"flex", "1",
			"height", "1px",
			"background-color", t.accent,
			"opacity", "0.2",
		)),
	)
}

func pillHeading(label string, t theme) *document.Node {
	return document.Box("heading", st("margin-bottom", "12px"),
		document.Heading(4, "heading-label", label, with(headingLabel,
			"display", "inline-block",
			"padding", "4px 12px",
			"border-radius", "9999px",
			"letter-spacing", "0.05em",
			"color", white,
			"background-color", t.accent,
		)),
	)
}

func plainHeading(label string, _ theme) *document.Node {
	return document.Box("heading", st("margin-bottom", "12px"),
		document.Heading(4, "heading-label", label, with(headingLabel, "color", gray700)),
	)
}
