package export

import "strings"

// Quality 是导出清晰度档位，对应栅格化时的放大倍数。
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

var qualityScales = map[Quality]float64{
	QualityLow:    1,
	QualityMedium: 2,
	QualityHigh:   4,
}

var qualityDPI = map[Quality]int{
	QualityLow:    72,
	QualityMedium: 150,
	QualityHigh:   300,
}

// ParseQuality reads a preset name; anything unknown is medium.
func ParseQuality(s string) Quality {
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := qualityScales[q]; ok {
		return q
	}
	return QualityMedium
}

// Scale is the rasterization multiplier applied to canonical units.
func (q Quality) Scale() float64 {
	if s, ok := qualityScales[q]; ok {
		return s
	}
	return qualityScales[QualityMedium]
}

// DPI is the nominal label shown to users; it does not affect output.
func (q Quality) DPI() int {
	if d, ok := qualityDPI[q]; ok {
		return d
	}
	return qualityDPI[QualityMedium]
}
