package raster

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"resumeStudio/internal/document"
	"resumeStudio/internal/export"
)

// Chromedp 是 chromedp 实现的栅格化引擎，与 Rod 行为一致。
type Chromedp struct {
	opts Options
}

func NewChromedp(opts Options) *Chromedp {
	return &Chromedp{opts: opts.withDefaults()}
}

type chromedpCapture struct {
	tab    context.Context
	cancel context.CancelFunc
	height int
	opts   Options
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

func (r *Chromedp) Prepare(ctx context.Context, snap *export.Snapshot) (_ export.Capture, err error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(document.CanonicalWidth, document.CanonicalHeight),
	)
	if r.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.opts.ChromePath))
	}

	// 浏览器生命周期独立于单次调用，由 Close 结束。
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	c := &chromedpCapture{
		tab: tabCtx,
		cancel: func() {
			cancelTab()
			cancelAlloc()
		},
		opts: r.opts,
	}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	// 先在 tab 上空跑一次启动浏览器，避免浏览器绑定到带超时的子 context。
	if err := chromedp.Run(tabCtx); err != nil {
		return nil, fmt.Errorf("start chromium: %w", err)
	}

	runCtx, stop := c.bind(ctx, r.opts.PrepareTimeout)
	defer stop()

	var settled bool
	var height float64
	err = chromedp.Run(runCtx,
		emulation.SetDeviceMetricsOverride(document.CanonicalWidth, document.CanonicalHeight, 1, false),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, snap.HTML()).Do(ctx)
		}),
		chromedp.WaitReady("#"+document.RootID, chromedp.ByQuery),
		chromedp.Evaluate(settleExpr, &settled, awaitPromise),
		chromedp.Evaluate(measureExpr, &height),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp prepare: %w", err)
	}
	c.height = canonicalHeight(int(math.Ceil(height)))
	return c, nil
}

// bind 把调用方 ctx 的取消传递到浏览器标签页上，并附加超时。
func (c *chromedpCapture) bind(ctx context.Context, timeout time.Duration) (context.Context, func()) {
	runCtx, cancel := context.WithTimeout(c.tab, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func (c *chromedpCapture) ContentHeight() int {
	return c.height
}

func (c *chromedpCapture) Rasterize(ctx context.Context, scale float64) (image.Image, error) {
	runCtx, stop := c.bind(ctx, c.opts.CaptureTimeout)
	defer stop()

	var ok bool
	var data []byte
	err := chromedp.Run(runCtx,
		emulation.SetDeviceMetricsOverride(document.CanonicalWidth, int64(c.height), scale, false),
		chromedp.Evaluate(framesExpr, &ok, awaitPromise),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			data, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{
					X:      0,
					Y:      0,
					Width:  document.CanonicalWidth,
					Height: float64(c.height),
					Scale:  1,
				}).
				WithFromSurface(true).
				WithCaptureBeyondViewport(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp capture: %w", err)
	}
	return decodePNG(data)
}

func (c *chromedpCapture) Close() error {
	c.cancel()
	return nil
}
