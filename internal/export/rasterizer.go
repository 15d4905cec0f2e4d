package export

import (
	"context"
	"errors"
	"image"
)

// ErrRasterize wraps every failure of the capture step.
var ErrRasterize = errors.New("rasterize failed")

// Rasterizer 把快照加载进离屏页面。
// Prepare 负责加载并等待页面稳定（load 事件、字体就绪、两帧动画、网络空闲），
// 返回的 Capture 才能截图；两步分开，稳定等待是接口契约的一部分。
type Rasterizer interface {
	Prepare(ctx context.Context, snap *Snapshot) (Capture, error)
}

// Capture is a settled off-screen page.
type Capture interface {
	// ContentHeight is the measured height of the root in canonical units.
	ContentHeight() int
	// Rasterize returns a bitmap of 794*scale by ContentHeight()*scale pixels.
	Rasterize(ctx context.Context, scale float64) (image.Image, error)
	Close() error
}
