package render

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"resumeStudio/internal/document"
	"resumeStudio/internal/templates"
)

type skillFunc func(skills []string, t theme) *document.Node

var skillStrategies = map[templates.SkillStyle]skillFunc{
	templates.SkillTags:    skillTags,
	templates.SkillBars:    skillBars,
	templates.SkillDots:    skillDots,
	templates.SkillList:    skillList,
	templates.SkillCircles: skillCircles,
}

func skillBlock(skills []string, t theme) *document.Node {
	fn, ok := skillStrategies[t.skill]
	if !ok {
		fn = skillTags
	}
	return fn(skills, t)
}

// BarWidth 返回技能条的长度百分比（65–95）。
// 该值只是装饰性占位，不代表熟练度；由技能文本哈希得出，保证重复渲染结果一致。
func BarWidth(skill string) int {
	return 65 + int(xxhash.Sum64String(skill)%31)
}

// Initials returns the first two characters of s, upper-cased.
func Initials(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

func skillTags(skills []string, t theme) *document.Node {
	box := document.Box("skill-tags", st("display", "flex", "flex-wrap", "wrap", "gap", "6px"))
	for _, s := range skills {
		box.Append(document.Text("skill", s, st(
			"padding", "2px 8px",
			"border-radius", "4px",
			"font-size", "12px",
			"font-weight", "500",
			"color", white,
			"background-color", t.accent,
		)))
	}
	return box
}

func skillBars(skills []string, t theme) *document.Node {
	box := document.Box("skill-bars", st("display", "flex", "flex-direction", "column", "gap", "6px"))
	for _, s := range skills {
		box.Append(document.Box("skill", st("display", "flex", "align-items", "center", "gap", "8px"),
			document.Text("skill-label", s, with(textXS(gray700), "width", "96px", "flex-shrink", "0")),
			document.Box("skill-track", st(
				"flex", "1",
				"height", "6px",
				"border-radius", "9999px",
				"background-color", gray200,
				"overflow", "hidden",
			),
				document.Box("skill-fill", st(
					"height", "100%",
					"border-radius", "9999px",
					"background-color", t.accent,
					"width", fmt.Sprintf("%d%%", BarWidth(s)),
				)),
			),
		))
	}
	return box
}

func skillDots(skills []string, t theme) *document.Node {
	box := document.Box("skill-dots", st("display", "flex", "flex-wrap", "wrap", "gap", "8px"))
	for _, s := range skills {
		box.Append(document.Box("skill", st("display", "flex", "align-items", "center", "gap", "6px"),
			document.Box("skill-dot", st(
				"width", "8px",
				"height", "8px",
				"border-radius", "9999px",
				"background-color", t.accent,
			)),
			document.Text("skill-label", s, textXS(gray700)),
		))
	}
	return box
}

func skillCircles(skills []string, t theme) *document.Node {
	box := document.Box("skill-circles", st("display", "flex", "flex-wrap", "wrap", "gap", "8px"))
	for _, s := range skills {
		box.Append(document.Box("skill", st(
			"display", "flex",
			"flex-direction", "column",
			"align-items", "center",
			"gap", "4px",
		),
			document.Box("skill-badge", st(
				"width", "32px",
				"height", "32px",
				"border-radius", "9999px",
				"border", "2px solid "+t.accent,
				"color", t.accent,
				"display", "flex",
				"align-items", "center",
				"justify-content", "center",
				"font-size", "12px",
				"font-weight", "700",
			), document.Text("skill-initials", Initials(s), nil)),
			document.Text("skill-label", s, with(textXS(gray600), "text-align", "center", "max-width", "48px")),
		))
	}
	return box
}

func skillList(skills []string, t theme) *document.Node {
	return glyphList("skill-list", "skill", skills, t.accent, gray700)
}

// glyphList renders a "▸" bulleted list; the side panel reuses it with its own text color.
func glyphList(role, itemRole string, items []string, accent, color string) *document.Node {
	list := document.List(role, st("display", "flex", "flex-direction", "column", "gap", "2px"))
	for _, s := range items {
		list.Append(document.Item(itemRole, with(textXS(color), "display", "flex", "align-items", "center", "gap", "8px"),
			document.Text("glyph", "▸", st("color", accent)),
			document.Text("skill-label", s, nil),
		))
	}
	return list
}
