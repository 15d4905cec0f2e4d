package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resumeStudio/internal/api/middleware"
	"resumeStudio/internal/database"
	"resumeStudio/internal/preview"
	"resumeStudio/internal/render"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/tasks"
	"resumeStudio/internal/templates"
)

// presigner 是生成缩略图链接所需的存储能力。
type presigner interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
}

// TemplateHandler 暴露内置模板目录。模板是静态注册的，只有缩略图位置落库。
type TemplateHandler struct {
	db              *gorm.DB
	storage         presigner
	queue           taskEnqueuer
	previewMaxWidth float64
	webFonts        bool
}

func NewTemplateHandler(db *gorm.DB, storageClient presigner, queue taskEnqueuer, previewMaxWidth float64, webFonts bool) *TemplateHandler {
	return &TemplateHandler{
		db:              db,
		storage:         storageClient,
		queue:           queue,
		previewMaxWidth: previewMaxWidth,
		webFonts:        webFonts,
	}
}

// GET /v1/templates?category=modern&q=nova
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	items := templates.Filter(templates.Category(c.Query("category")), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// GET /v1/templates/categories
func (h *TemplateHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, templates.Categories())
}

// GET /v1/templates/:id
// 详情接口不做回落：未知 id 返回 404，回落只发生在渲染时。
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	desc, ok := templates.Find(c.Param("id"))
	if !ok {
		NotFound(c, "template not found")
		return
	}
	c.JSON(http.StatusOK, desc)
}

// GET /v1/templates/:id/thumbnail
func (h *TemplateHandler) GetThumbnail(c *gin.Context) {
	desc, ok := templates.Find(c.Param("id"))
	if !ok {
		NotFound(c, "template not found")
		return
	}

	ctx := c.Request.Context()
	var thumb database.TemplateThumbnail
	if err := h.db.WithContext(ctx).First(&thumb, "template_id = ?", desc.ID).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			NotFound(c, "thumbnail not generated")
		default:
			Internal(c, "failed to query thumbnail")
		}
		return
	}

	url, err := h.storage.GeneratePresignedURL(ctx, thumb.ObjectKey, time.Hour)
	if err != nil {
		middleware.LoggerFromContext(c).Error("presign thumbnail failed", slog.Any("error", err))
		Internal(c, "failed to generate url")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "updated_at": thumb.UpdatedAt})
}

// GET /v1/templates/:id/preview?width=320
// 用示例简历渲染模板，未知 id 与渲染一致地回落到默认模板。
func (h *TemplateHandler) PreviewTemplate(c *gin.Context) {
	width, ok := queryWidth(c, "width", h.previewMaxWidth)
	if !ok {
		return
	}
	desc := templates.Lookup(c.Param("id"))
	doc := render.Render(resume.Sample(), desc, nil)

	var stylesheets []string
	if h.webFonts {
		stylesheets = render.WebFontStylesheets(desc)
	}
	writePreview(c, preview.NewFrame(doc, width, h.previewMaxWidth), stylesheets)
}

type thumbnailsRequest struct {
	TemplateIDs []string `json:"template_ids"`
}

// POST /internal/templates/thumbnails
// 触发缩略图重建；请求体为空时重建全部模板。
func (h *TemplateHandler) RegenerateThumbnails(c *gin.Context) {
	var req thumbnailsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, err.Error())
			return
		}
	}
	for _, id := range req.TemplateIDs {
		if _, ok := templates.Find(id); !ok {
			BadRequest(c, "unknown template id: "+strconv.Quote(id))
			return
		}
	}

	task, err := tasks.NewTemplateThumbnailsTask(tasks.TemplateThumbnailsPayload{
		TemplateIDs:   req.TemplateIDs,
		CorrelationID: middleware.CorrelationID(c),
	})
	if err != nil {
		Internal(c, "failed to create task")
		return
	}
	info, err := h.queue.EnqueueContext(c.Request.Context(), task)
	if err != nil {
		middleware.LoggerFromContext(c).Error("enqueue thumbnails failed", slog.Any("error", err))
		Internal(c, "failed to enqueue thumbnails")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"task_id": info.ID})
}
