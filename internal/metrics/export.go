package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumestudio",
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "导出耗时分布（秒），包含浏览器加载与截图。",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"format", "quality"},
	)

	exportPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resumestudio",
			Subsystem: "export",
			Name:      "pdf_pages",
			Help:      "PDF 导出的页数分布。",
			Buckets:   []float64{1, 2, 3, 4, 6, 8},
		},
	)

	exportBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumestudio",
			Subsystem: "export",
			Name:      "artifact_bytes",
			Help:      "导出产物大小（字节）。",
			Buckets:   prometheus.ExponentialBuckets(64*1024, 2, 10),
		},
		[]string{"format"},
	)

	exportFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumestudio",
			Subsystem: "export",
			Name:      "failures_total",
			Help:      "导出失败次数。",
		},
		[]string{"format"},
	)
)

// ObserveExport 记录一次成功导出。pages 只对 PDF 有意义。
func ObserveExport(format, quality string, elapsed time.Duration, size, pages int) {
	exportDuration.WithLabelValues(format, quality).Observe(elapsed.Seconds())
	exportBytes.WithLabelValues(format).Observe(float64(size))
	if format == "pdf" {
		exportPages.Observe(float64(pages))
	}
}

// ExportFailed 记录一次失败导出。
func ExportFailed(format string) {
	exportFailures.WithLabelValues(format).Inc()
}
