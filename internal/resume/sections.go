package resume

import "strings"

// SectionType 标识一个可排序的内容区块。
type SectionType string

const (
	SectionSummary         SectionType = "summary"
	SectionExperience      SectionType = "experience"
	SectionProjects        SectionType = "projects"
	SectionEducation       SectionType = "education"
	SectionExtracurricular SectionType = "extracurricular"
	SectionSkills          SectionType = "skills"
	SectionLanguages       SectionType = "languages"
	SectionCertifications  SectionType = "certifications"
)

var knownSections = map[SectionType]struct{}{
	SectionSummary:         {},
	SectionExperience:      {},
	SectionProjects:        {},
	SectionEducation:       {},
	SectionExtracurricular: {},
	SectionSkills:          {},
	SectionLanguages:       {},
	SectionCertifications:  {},
}

// DefaultSectionOrder 是编辑器未指定顺序时使用的排列。
func DefaultSectionOrder() []SectionType {
	return []SectionType{
		SectionSummary,
		SectionExperience,
		SectionProjects,
		SectionEducation,
		SectionExtracurricular,
		SectionSkills,
		SectionLanguages,
		SectionCertifications,
	}
}

// Known reports whether t is one of the renderable section tags.
func (t SectionType) Known() bool {
	_, ok := knownSections[t]
	return ok
}

// ParseSectionOrder converts raw tags into a section order.
// Unknown tags are dropped and repeated tags keep only their first position.
// A nil input yields the default order; an empty, non-nil input stays empty.
func ParseSectionOrder(raw []string) []SectionType {
	if raw == nil {
		return DefaultSectionOrder()
	}
	order := make([]SectionType, 0, len(raw))
	for _, r := range raw {
		order = append(order, SectionType(strings.ToLower(strings.TrimSpace(r))))
	}
	return CleanOrder(order)
}

// CleanOrder drops unknown and duplicate tags, preserving first occurrences.
func CleanOrder(order []SectionType) []SectionType {
	seen := make(map[SectionType]struct{}, len(order))
	out := make([]SectionType, 0, len(order))
	for _, t := range order {
		if !t.Known() {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// FilterOrder keeps the tags of order that belong to allowed, in order.
func FilterOrder(order []SectionType, allowed ...SectionType) []SectionType {
	set := make(map[SectionType]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	out := make([]SectionType, 0, len(order))
	for _, t := range order {
		if _, ok := set[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Strings is the inverse of ParseSectionOrder, used for persistence.
func Strings(order []SectionType) []string {
	out := make([]string, len(order))
	for i, t := range order {
		out[i] = string(t)
	}
	return out
}
