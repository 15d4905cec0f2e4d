package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resumeStudio/internal/api/middleware"
	"resumeStudio/internal/assets"
	"resumeStudio/internal/document"
	"resumeStudio/internal/preview"
	"resumeStudio/internal/render"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/templates"
)

// RenderHandler 提供无状态渲染：编辑器未保存的内容也能得到与导出一致的预览。
type RenderHandler struct {
	storage         assets.ObjectReader
	previewMaxWidth float64
	webFonts        bool
}

func NewRenderHandler(storageClient assets.ObjectReader, previewMaxWidth float64, webFonts bool) *RenderHandler {
	return &RenderHandler{
		storage:         storageClient,
		previewMaxWidth: previewMaxWidth,
		webFonts:        webFonts,
	}
}

type renderRequest struct {
	Data           json.RawMessage `json:"data"`
	TemplateID     string          `json:"template_id"`
	SectionOrder   []string        `json:"section_order"`
	ContainerWidth float64         `json:"container_width"`
	MaxWidth       float64         `json:"max_width"`
	ContentHeight  float64         `json:"content_height"`
}

// document 解码请求并渲染；失败时已写好响应。
func (h *RenderHandler) document(c *gin.Context, req *renderRequest) (*document.Document, templates.Descriptor, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		BadRequest(c, err.Error())
		return nil, templates.Descriptor{}, false
	}
	data, err := resume.Decode(req.Data)
	if err != nil {
		BadRequest(c, err.Error())
		return nil, templates.Descriptor{}, false
	}

	// 头像 key 只能解析当前用户自己的对象，匿名调用保留原值。
	if userID, ok := userIDFromContext(c); ok && h.storage != nil {
		inlined, warning, err := assets.InlinePhoto(c.Request.Context(), h.storage, userID, data)
		if err != nil {
			middleware.LoggerFromContext(c).Error("inline photo failed", slog.Any("error", err))
			Internal(c, "failed to load photo")
			return nil, templates.Descriptor{}, false
		}
		if warning != nil {
			c.Header("X-Resume-Warning", strconv.Itoa(warning.Code))
		}
		data = inlined
	}

	var order []resume.SectionType
	if req.SectionOrder != nil {
		order = resume.ParseSectionOrder(req.SectionOrder)
	}
	desc := templates.Lookup(req.TemplateID)
	return render.Render(data, desc, order), desc, true
}

// POST /v1/render/preview
func (h *RenderHandler) Preview(c *gin.Context) {
	var req renderRequest
	doc, desc, ok := h.document(c, &req)
	if !ok {
		return
	}

	maxWidth := req.MaxWidth
	if maxWidth <= 0 {
		maxWidth = h.previewMaxWidth
	}
	width := req.ContainerWidth
	if width <= 0 {
		width = maxWidth
	}
	frame := preview.NewFrame(doc, width, maxWidth)
	if req.ContentHeight > 0 {
		frame.SetContentHeight(req.ContentHeight)
	}

	var stylesheets []string
	if h.webFonts {
		stylesheets = render.WebFontStylesheets(desc)
	}
	writePreview(c, frame, stylesheets)
}

// POST /v1/render/document
// 返回规范尺寸的文档树，供客户端自行绘制。
func (h *RenderHandler) Document(c *gin.Context) {
	var req renderRequest
	doc, _, ok := h.document(c, &req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GET /v1/render/scale?width=480&max_width=794&content_height=1500
func (h *RenderHandler) Scale(c *gin.Context) {
	width, ok := queryWidth(c, "width", 0)
	if !ok {
		return
	}
	if width == 0 {
		BadRequest(c, "missing width")
		return
	}
	maxWidth, ok := queryWidth(c, "max_width", h.previewMaxWidth)
	if !ok {
		return
	}
	contentHeight, ok := queryWidth(c, "content_height", document.CanonicalHeight)
	if !ok {
		return
	}

	frame := preview.NewFrame(nil, width, maxWidth)
	frame.SetContentHeight(contentHeight)
	c.JSON(http.StatusOK, gin.H{
		"scale":            frame.Scale,
		"effective_width":  float64(document.CanonicalWidth) * frame.Scale,
		"content_height":   frame.ContentHeight,
		"effective_height": frame.EffectiveHeight,
	})
}

// queryWidth 读取一个正数查询参数，缺省时返回 def；非法值写 400。
func queryWidth(c *gin.Context, key string, def float64) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		BadRequest(c, "invalid "+key)
		return 0, false
	}
	return v, true
}

func writePreview(c *gin.Context, frame *preview.Frame, stylesheets []string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("X-Preview-Scale", strconv.FormatFloat(frame.Scale, 'f', -1, 64))
	c.Status(http.StatusOK)
	if err := frame.WriteHTML(c.Writer, stylesheets...); err != nil {
		middleware.LoggerFromContext(c).Error("write preview failed", slog.Any("error", err))
	}
}
