package render

import (
	"resumeStudio/internal/resume"
	"resumeStudio/internal/templates"
)

// Panel describes the side panel of a sidebar layout.
type Panel struct {
	// Left 为 true 时侧栏在左。
	Left bool
	// WidthPct 是侧栏占画布宽度的百分比。
	WidthPct int
}

// Width returns the panel width in canonical units.
func (p Panel) Width() int {
	return (794*p.WidthPct + 50) / 100
}

// Plan 是布局解析的结果：骨架、各轴的展示变体以及每个区域要渲染的区块。
type Plan struct {
	Template templates.Descriptor
	Skeleton templates.Layout
	Header   templates.HeaderStyle
	Heading  templates.HeadingStyle
	Skill    templates.SkillStyle

	// Main 是单栏或侧栏布局主区域的区块顺序。
	Main []resume.SectionType
	// Side 仅在侧栏布局中非 nil。
	Side *Panel
	// HeaderInPanel 表示名字与职位压缩进侧栏，主区域不渲染页眉。
	HeaderInPanel bool

	BucketA []resume.SectionType
	BucketB []resume.SectionType
}

var (
	mainPanelSections = []resume.SectionType{
		resume.SectionSummary,
		resume.SectionExperience,
		resume.SectionProjects,
	}
	bucketASections = mainPanelSections
	bucketBSections = []resume.SectionType{
		resume.SectionEducation,
		resume.SectionSkills,
		resume.SectionLanguages,
		resume.SectionCertifications,
	}
)

var panels = map[templates.Layout]Panel{
	templates.LayoutSidebarLeft:  {Left: true, WidthPct: 36},
	templates.LayoutSidebarRight: {Left: false, WidthPct: 32},
}

// Resolve picks the skeleton and the sub-renderers for a template and section order.
// A nil order means the default order; unknown and repeated tags are dropped.
func Resolve(desc templates.Descriptor, order []resume.SectionType) Plan {
	desc = desc.Normalized()
	if order == nil {
		order = resume.DefaultSectionOrder()
	}
	order = resume.CleanOrder(order)

	p := Plan{
		Template: desc,
		Skeleton: desc.Layout,
		Header:   desc.HeaderStyle,
		Heading:  desc.SectionStyle,
		Skill:    desc.SkillStyle,
	}

	switch desc.Layout {
	case templates.LayoutSidebarLeft, templates.LayoutSidebarRight:
		panel := panels[desc.Layout]
		p.Side = &panel
		p.Main = resume.FilterOrder(order, mainPanelSections...)
		p.HeaderInPanel = desc.HeaderStyle == templates.HeaderBanner
	case templates.LayoutTwoColumn:
		p.BucketA = resume.FilterOrder(order, bucketASections...)
		p.BucketB = resume.FilterOrder(order, bucketBSections...)
	default:
		p.Main = order
	}
	return p
}
