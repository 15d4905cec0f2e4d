package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"resumeStudio/internal/document"
	"resumeStudio/internal/export"
	"resumeStudio/internal/preview"
	"resumeStudio/internal/raster"
	"resumeStudio/internal/render"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/templates"
)

// render 在本地把一份简历 JSON 渲染成 HTML 预览、PNG 或 A4 PDF，不依赖数据库与队列。
func main() {
	var (
		input      = flag.String("in", "-", "简历 JSON 文件路径，- 表示 stdin；为空时使用示例简历")
		templateID = flag.String("template", templates.DefaultID(), "模板 id")
		sections   = flag.String("sections", "", "逗号分隔的分区顺序（可选）")
		format     = flag.String("format", "pdf", "输出格式：html | png | pdf")
		quality    = flag.String("quality", string(export.QualityHigh), "导出质量：low | medium | high")
		output     = flag.String("out", "", "输出文件路径（默认按姓名生成）")
		width      = flag.Float64("width", 0, "HTML 预览容器宽度（px，默认不缩放）")
		engine     = flag.String("engine", raster.EngineRod, "栅格化引擎：rod | chromedp")
		chromePath = flag.String("chrome", "", "Chrome/Chromium 可执行文件路径（可选）")
		webFonts   = flag.Bool("web-fonts", false, "引用 Google Fonts 样式表")
		timeout    = flag.Duration("timeout", 2*time.Minute, "整体超时")
		list       = flag.Bool("list", false, "列出内置模板后退出")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *list {
		for _, d := range templates.All() {
			fmt.Printf("%-12s %-10s %s\n", d.ID, d.Category, d.Name)
		}
		return
	}

	data, err := loadData(*input)
	if err != nil {
		log.Fatalf("load resume: %v", err)
	}

	var order []resume.SectionType
	if strings.TrimSpace(*sections) != "" {
		order = resume.ParseSectionOrder(strings.Split(*sections, ","))
	}
	desc := templates.Lookup(*templateID)
	if desc.ID != *templateID {
		logger.Warn("unknown template, using default", slog.String("requested", *templateID), slog.String("template", desc.ID))
	}
	doc := render.Render(data, desc, order)

	var stylesheets []string
	if *webFonts {
		stylesheets = render.WebFontStylesheets(desc)
	}

	name := *output
	if name == "" {
		name = strings.TrimSpace(data.PersonalInfo.FullName)
		if name == "" {
			name = "resume"
		}
	}

	if *format == "html" {
		if filepath.Ext(name) != ".html" {
			name += ".html"
		}
		w := *width
		if w <= 0 {
			w = document.CanonicalWidth
		}
		if err := writeHTML(name, preview.NewFrame(doc, w, document.CanonicalWidth), stylesheets); err != nil {
			log.Fatalf("write html: %v", err)
		}
		fmt.Println(name)
		return
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		log.Fatalf("%v", err)
	}
	rasterizer, err := raster.New(*engine, raster.Options{ChromePath: *chromePath, Logger: logger})
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	exporter := export.NewExporter(rasterizer, logger, stylesheets...)
	task := exporter.Start(ctx, doc, name, f, export.ParseQuality(*quality))
	art, err := task.Wait(ctx)
	if err != nil {
		task.Cancel()
		<-task.Done()
		log.Fatalf("export: %v", err)
	}

	if err := os.WriteFile(art.Filename, art.Data, 0o644); err != nil {
		log.Fatalf("write %s: %v", art.Filename, err)
	}
	logger.Info("exported",
		slog.String("file", art.Filename),
		slog.Int("pages", art.Pages),
		slog.Int("width", art.PixelWidth),
		slog.Int("height", art.PixelHeight),
		slog.Duration("elapsed", art.Elapsed),
	)
	fmt.Println(art.Filename)
}

func loadData(path string) (resume.Data, error) {
	switch path {
	case "":
		return resume.Sample(), nil
	case "-":
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return resume.Data{}, err
		}
		return resume.Decode(raw)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return resume.Data{}, err
	}
	return resume.Decode(raw)
}

func writeHTML(path string, frame *preview.Frame, stylesheets []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return frame.WriteHTML(f, stylesheets...)
}
