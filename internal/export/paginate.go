package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"sync"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"resumeStudio/internal/document"
)

// A4 物理尺寸（毫米）。
const (
	PageWidthMm  = 210.0
	PageHeightMm = 297.0

	jpegQuality = 95
)

// pageTolerance 是一个画布像素对应的毫米数。
// 1123px 换算为 297.02mm，没有这个容差会为一页内容多出一张空白页。
const pageTolerance = PageWidthMm / document.CanonicalWidth

// ErrPageCount means the assembled PDF does not have the planned number of pages.
var ErrPageCount = errors.New("pdf page count mismatch")

// PageSlice 描述一页上显示的内容区间：同一张整图向上平移 OffsetMm。
type PageSlice struct {
	Index    int
	OffsetMm float64
	TopMm    float64
	BottomMm float64
}

// PlanPages computes the physical height of a pxW×pxH bitmap laid at A4 width
// and the pages needed to show it.
//
// The page count is ceil((heightMm - pageTolerance) / 297), at least 1: content
// overshooting a page boundary by at most one canonical pixel (about 0.26mm)
// does not open a new page. A 794×1123 canvas is 297.02mm tall and yields one
// page, not two.
func PlanPages(pxW, pxH int) (heightMm float64, pages []PageSlice) {
	if pxW <= 0 || pxH <= 0 {
		return 0, nil
	}
	heightMm = PageWidthMm * float64(pxH) / float64(pxW)

	n := int(math.Ceil((heightMm - pageTolerance) / PageHeightMm))
	if n < 1 {
		n = 1
	}
	pages = make([]PageSlice, n)
	for i := range pages {
		top := float64(i) * PageHeightMm
		bottom := math.Min(top+PageHeightMm, heightMm)
		pages[i] = PageSlice{
			Index:    i,
			OffsetMm: -top,
			TopMm:    top,
			BottomMm: bottom,
		}
	}
	return heightMm, pages
}

var disableConfigDir sync.Once

// BuildPDF 以滑动窗口方式把整张图切成 A4 页：每页放置同一张 JPEG，纵向偏移一个页高。
func BuildPDF(img image.Image) ([]byte, int, error) {
	b := img.Bounds()
	heightMm, pages := PlanPages(b.Dx(), b.Dy())
	if len(pages) == 0 {
		return nil, 0, fmt.Errorf("build pdf: empty image")
	}

	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, 0, fmt.Errorf("encode jpeg: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("resume", opts, bytes.NewReader(jpg.Bytes()))
	for _, p := range pages {
		pdf.AddPage()
		pdf.ImageOptions("resume", 0, p.OffsetMm, PageWidthMm, heightMm, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, fmt.Errorf("write pdf: %w", err)
	}

	if err := verifyPageCount(out.Bytes(), len(pages)); err != nil {
		return nil, 0, err
	}
	return out.Bytes(), len(pages), nil
}

func verifyPageCount(data []byte, want int) error {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	got, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("read back pdf: %w", err)
	}
	if got != want {
		return fmt.Errorf("%w: planned %d, wrote %d", ErrPageCount, want, got)
	}
	return nil
}
