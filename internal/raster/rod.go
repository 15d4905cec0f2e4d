package raster

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"resumeStudio/internal/document"
	"resumeStudio/internal/export"
)

// Rod 基于 go-rod：每次 Prepare 启动独立的浏览器与页面，互不影响。
type Rod struct {
	opts Options
}

func NewRod(opts Options) *Rod {
	return &Rod{opts: opts.withDefaults()}
}

type rodCapture struct {
	launch  *launcher.Launcher
	browser *rod.Browser
	page    *rod.Page
	height  int
	opts    Options
}

func (r *Rod) Prepare(ctx context.Context, snap *export.Snapshot) (_ export.Capture, err error) {
	logger := r.opts.Logger

	launch := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)
	if r.opts.ChromePath != "" {
		launch = launch.Bin(r.opts.ChromePath)
	} else if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	c := &rodCapture{launch: launch, opts: r.opts}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	c.browser = rod.New().ControlURL(browserURL)
	if err := c.browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	c.page, err = c.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	page := c.page.Context(ctx).Timeout(r.opts.PrepareTimeout)
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             document.CanonicalWidth,
		Height:            document.CanonicalHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	if err := page.SetDocumentContent(snap.HTML()); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	if _, err := page.Eval(asFunc(settleExpr)); err != nil {
		return nil, fmt.Errorf("wait settle: %w", err)
	}
	if err := page.WaitIdle(r.opts.IdleTimeout); err != nil {
		logger.Warn("rod: idle wait timed out, continue", slog.Any("error", err))
	}

	res, err := page.Eval(asFunc(measureExpr))
	if err != nil {
		return nil, fmt.Errorf("measure root: %w", err)
	}
	c.height = canonicalHeight(res.Value.Int())

	logger.Debug("rod: page settled", slog.Int("height", c.height))
	return c, nil
}

func (c *rodCapture) ContentHeight() int {
	return c.height
}

func (c *rodCapture) Rasterize(ctx context.Context, scale float64) (image.Image, error) {
	page := c.page.Context(ctx).Timeout(c.opts.CaptureTimeout)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             document.CanonicalWidth,
		Height:            c.height,
		DeviceScaleFactor: scale,
	}); err != nil {
		return nil, fmt.Errorf("set device scale: %w", err)
	}
	if _, err := page.Eval(asFunc(framesExpr)); err != nil {
		return nil, fmt.Errorf("wait frames: %w", err)
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      0,
			Width:  document.CanonicalWidth,
			Height: float64(c.height),
			Scale:  1,
		},
		FromSurface:           true,
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return nil, fmt.Errorf("page screenshot: %w", err)
	}
	return decodePNG(data)
}

func (c *rodCapture) Close() error {
	var err error
	if c.page != nil {
		err = c.page.Close()
	}
	if c.browser != nil {
		if cerr := c.browser.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	c.launch.Cleanup()
	return err
}
