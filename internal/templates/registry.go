package templates

import (
	"strings"
)

type Category string

const (
	CategoryModern    Category = "modern"
	CategoryMinimal   Category = "minimal"
	CategoryCreative  Category = "creative"
	CategoryCorporate Category = "corporate"
	CategoryATS       Category = "ats"

	// CategoryAll 仅用于筛选，不会出现在模板描述中。
	CategoryAll Category = "all"
)

type Layout string

const (
	LayoutSingle       Layout = "single"
	LayoutSidebarLeft  Layout = "sidebar-left"
	LayoutSidebarRight Layout = "sidebar-right"
	LayoutTwoColumn    Layout = "two-column"
)

type HeaderStyle string

const (
	HeaderCentered HeaderStyle = "centered"
	HeaderLeft     HeaderStyle = "left"
	HeaderBanner   HeaderStyle = "banner"
	HeaderCompact  HeaderStyle = "compact"
	HeaderBold     HeaderStyle = "bold"
)

type HeadingStyle string

const (
	HeadingUnderline HeadingStyle = "underline"
	HeadingFilled    HeadingStyle = "filled"
	HeadingDots      HeadingStyle = "dots"
	HeadingLine      HeadingStyle = "line"
	HeadingTag       HeadingStyle = "tag"
	HeadingNone      HeadingStyle = "none"
)

type SkillStyle string

const (
	SkillTags    SkillStyle = "tags"
	SkillBars    SkillStyle = "bars"
	SkillDots    SkillStyle = "dots"
	SkillList    SkillStyle = "list"
	SkillCircles SkillStyle = "circles"
)

// Descriptor 描述一个模板的全部视觉参数。
// 注册表内的描述是静态的，调用方拿到的是值拷贝。
type Descriptor struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Category       Category     `json:"category"`
	Layout         Layout       `json:"layout"`
	AccentColor    string       `json:"accentColor"`
	SecondaryColor string       `json:"secondaryColor"`
	FontFamily     string       `json:"fontFamily"`
	HeaderStyle    HeaderStyle  `json:"headerStyle"`
	SectionStyle   HeadingStyle `json:"sectionStyle"`
	SkillStyle     SkillStyle   `json:"skillStyle"`
	DarkSidebar    bool         `json:"darkSidebar"`
}

// CategoryInfo is one entry of the category picker.
type CategoryInfo struct {
	Key   Category `json:"key"`
	Label string   `json:"label"`
	Count int      `json:"count"`
}

var categoryLabels = []CategoryInfo{
	{Key: CategoryAll, Label: "All"},
	{Key: CategoryModern, Label: "Modern"},
	{Key: CategoryMinimal, Label: "Minimal"},
	{Key: CategoryCreative, Label: "Creative"},
	{Key: CategoryCorporate, Label: "Corporate"},
	{Key: CategoryATS, Label: "ATS-Friendly"},
}

var byID = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, d := range catalog {
		m[d.ID] = i
	}
	return m
}()

// DefaultID 是未知 id 回落到的模板。
func DefaultID() string {
	return catalog[0].ID
}

// Lookup 按 id 查找模板。未知 id 返回目录中的第一个模板，永不失败。
func Lookup(id string) Descriptor {
	d, _ := Find(id)
	return d
}

// Find is Lookup that also reports whether id was known.
func Find(id string) (Descriptor, bool) {
	if i, ok := byID[strings.TrimSpace(id)]; ok {
		return catalog[i], true
	}
	return catalog[0], false
}

// All returns the catalog in display order.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// ByCategory returns the descriptors of one category; "all" or "" returns everything.
func ByCategory(c Category) []Descriptor {
	return Filter(c, "")
}

// SearchName matches names case-insensitively by substring.
func SearchName(query string) []Descriptor {
	return Filter(CategoryAll, query)
}

// Filter combines the category tab and the search box of the template picker.
func Filter(c Category, query string) []Descriptor {
	c = Category(strings.ToLower(strings.TrimSpace(string(c))))
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Descriptor, 0, len(catalog))
	for _, d := range catalog {
		if c != "" && c != CategoryAll && d.Category != c {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(d.Name), q) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Categories 返回分类标签及每个分类下的模板数量，"all" 排在首位。
func Categories() []CategoryInfo {
	counts := make(map[Category]int, len(categoryLabels))
	for _, d := range catalog {
		counts[d.Category]++
	}
	out := make([]CategoryInfo, len(categoryLabels))
	for i, info := range categoryLabels {
		info.Count = counts[info.Key]
		if info.Key == CategoryAll {
			info.Count = len(catalog)
		}
		out[i] = info
	}
	return out
}

// Normalized returns a copy with every unknown enum replaced by the first variant
// of its kind, so renderers never see values they cannot dispatch.
func (d Descriptor) Normalized() Descriptor {
	switch d.Layout {
	case LayoutSingle, LayoutSidebarLeft, LayoutSidebarRight, LayoutTwoColumn:
	default:
		d.Layout = LayoutSingle
	}
	switch d.HeaderStyle {
	case HeaderCentered, HeaderLeft, HeaderBanner, HeaderCompact, HeaderBold:
	default:
		d.HeaderStyle = HeaderCentered
	}
	switch d.SectionStyle {
	case HeadingUnderline, HeadingFilled, HeadingDots, HeadingLine, HeadingTag, HeadingNone:
	default:
		d.SectionStyle = HeadingUnderline
	}
	switch d.SkillStyle {
	case SkillTags, SkillBars, SkillDots, SkillList, SkillCircles:
	default:
		d.SkillStyle = SkillTags
	}
	return d
}
