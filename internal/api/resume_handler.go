package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumeStudio/internal/api/middleware"
	"resumeStudio/internal/database"
	"resumeStudio/internal/export"
	"resumeStudio/internal/preview"
	"resumeStudio/internal/render"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/storage"
	"resumeStudio/internal/tasks"
	"resumeStudio/internal/templates"
	"resumeStudio/internal/worker"
)

// taskEnqueuer 由 *asynq.Client 实现。
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ResumeHandler 负责简历的增删改查、服务端预览与导出。
type ResumeHandler struct {
	db              *gorm.DB
	queue           taskEnqueuer
	storage         storage.ObjectStore
	maxResumes      int
	previewMaxWidth float64
	webFonts        bool
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(db *gorm.DB, queue taskEnqueuer, storageClient storage.ObjectStore, maxResumes int, previewMaxWidth float64, webFonts bool) *ResumeHandler {
	return &ResumeHandler{
		db:              db,
		queue:           queue,
		storage:         storageClient,
		maxResumes:      maxResumes,
		previewMaxWidth: previewMaxWidth,
		webFonts:        webFonts,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

// SectionOrder 为 null 表示使用模板的默认顺序；空数组表示不渲染任何章节。
type resumeRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	TemplateID   string          `json:"template_id"`
	SectionOrder []string        `json:"section_order"`
	Data         json.RawMessage `json:"data"`
}

type resumeListItem struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	TemplateID string    `json:"template_id"`
	Status     string    `json:"status,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type resumeResponse struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	TemplateID   string         `json:"template_id"`
	SectionOrder []string       `json:"section_order"`
	Data         datatypes.JSON `json:"data"`
	Status       string         `json:"status,omitempty"`
	Format       string         `json:"artifact_format,omitempty"`
	Pages        int            `json:"artifact_pages,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// bind 解析并校验请求体，失败时已写好 400 响应。
func (r *resumeRequest) bind(c *gin.Context) bool {
	if err := c.ShouldBindJSON(r); err != nil {
		BadRequest(c, err.Error())
		return false
	}
	if len(r.Data) == 0 || string(r.Data) == "null" {
		raw, _ := json.Marshal(resume.Default())
		r.Data = raw
	}
	if err := resume.Validate(r.Data); err != nil {
		BadRequest(c, err.Error())
		return false
	}
	if r.SectionOrder != nil {
		r.SectionOrder = resume.Strings(resume.ParseSectionOrder(r.SectionOrder))
	}
	// 未知模板 id 落到目录里的默认模板，保证之后的渲染永远有合法描述。
	r.TemplateID = templates.Lookup(r.TemplateID).ID
	return true
}

// CreateResume 保存一份新的简历，超过限额返回 403。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req resumeRequest
	if !req.bind(c) {
		return
	}

	ctx := c.Request.Context()
	var count int64
	if err := h.db.WithContext(ctx).
		Model(&database.Resume{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		Internal(c, "failed to count resumes")
		return
	}
	if h.maxResumes > 0 && count >= int64(h.maxResumes) {
		Forbidden(c, "resume limit reached")
		return
	}

	model := database.Resume{
		Name:         req.Name,
		TemplateID:   req.TemplateID,
		SectionOrder: req.SectionOrder,
		Data:         datatypes.JSON(req.Data),
		UserID:       userID,
	}
	if err := h.db.WithContext(ctx).Create(&model).Error; err != nil {
		Internal(c, "failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, newResumeResponse(model))
}

// GetLatestResume 返回最近编辑的简历；没有时返回一份未保存的空白简历。
func (h *ResumeHandler) GetLatestResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var model database.Resume
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&model).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		raw, _ := json.Marshal(resume.Default())
		c.JSON(http.StatusOK, resumeResponse{
			Name:       defaultResumeName,
			TemplateID: templates.DefaultID(),
			Data:       datatypes.JSON(raw),
		})
	case err != nil:
		Internal(c, "failed to query latest resume")
	default:
		c.JSON(http.StatusOK, newResumeResponse(model))
	}
}

// ListResumes 列出用户全部简历。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var resumes []database.Resume
	if err := h.db.WithContext(c.Request.Context()).
		Select("id", "name", "template_id", "status", "updated_at").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&resumes).Error; err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, resumeListItem{
			ID:         r.ID,
			Name:       r.Name,
			TemplateID: r.TemplateID,
			Status:     r.Status,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, items)
}

// GetResume 返回指定 ID 的简历。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	model, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// UpdateResume 覆盖指定简历的内容、模板与章节顺序。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req resumeRequest
	if !req.bind(c) {
		return
	}
	model, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}

	// 用 Select 强制写入零值：section_order 为 null 也是有效的覆盖。
	model.Name = req.Name
	model.TemplateID = req.TemplateID
	model.SectionOrder = req.SectionOrder
	model.Data = datatypes.JSON(req.Data)
	model.UpdatedAt = time.Now()
	if err := h.db.WithContext(c.Request.Context()).
		Model(model).
		Select("name", "template_id", "section_order", "data", "updated_at").
		Updates(model).Error; err != nil {
		Internal(c, "failed to update resume")
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// DeleteResume 删除简历及其全部导出产物。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	model, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(&database.Resume{}, model.ID).Error; err != nil {
		Internal(c, "failed to delete resume")
		return
	}
	if err := h.storage.DeletePrefix(ctx, storage.ExportPrefix(model.UserID, model.ID)); err != nil {
		middleware.LoggerFromContext(c).Warn("delete resume artifacts failed",
			slog.Uint64("resume_id", uint64(model.ID)),
			slog.Any("error", err),
		)
	}

	c.Status(http.StatusNoContent)
}

// PreviewResume 返回按容器宽度缩放后的 HTML 预览。
// GET /v1/resume/:id/preview?width=480
func (h *ResumeHandler) PreviewResume(c *gin.Context) {
	model, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}

	width, ok := queryWidth(c, "width", h.previewMaxWidth)
	if !ok {
		return
	}

	doc, warning, err := worker.BuildDocument(c.Request.Context(), h.storage, model)
	if err != nil {
		if errors.Is(err, resume.ErrInvalidShape) {
			Error(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		middleware.LoggerFromContext(c).Error("build preview document failed", slog.Any("error", err))
		Internal(c, "failed to render preview")
		return
	}
	if warning != nil {
		c.Header("X-Resume-Warning", strconv.Itoa(warning.Code))
	}

	var stylesheets []string
	if h.webFonts {
		stylesheets = render.WebFontStylesheets(templates.Lookup(model.TemplateID))
	}
	writePreview(c, preview.NewFrame(doc, width, h.previewMaxWidth), stylesheets)
}

type exportRequest struct {
	Format   string `json:"format" binding:"required"`
	Quality  string `json:"quality"`
	Filename string `json:"filename" binding:"max=255"`
}

// ExportResume 将导出任务入队并立即返回 202，结果经 WebSocket 推送。
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	quality := export.ParseQuality(req.Quality)

	model, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	correlationID := middleware.CorrelationID(c)
	task, err := tasks.NewResumeExportTask(tasks.ResumeExportPayload{
		ResumeID:      model.ID,
		Format:        string(format),
		Quality:       string(quality),
		Filename:      req.Filename,
		CorrelationID: correlationID,
	})
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	if err := h.db.WithContext(ctx).Model(model).Update("status", database.ExportStatusPending).Error; err != nil {
		Internal(c, "failed to update resume status")
		return
	}

	info, err := h.queue.EnqueueContext(ctx, task)
	if err != nil {
		middleware.LoggerFromContext(c).Error("enqueue export failed", slog.Any("error", err))
		_ = h.db.WithContext(context.WithoutCancel(ctx)).Model(model).Update("status", database.ExportStatusFailed).Error
		Internal(c, "failed to enqueue export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "export request accepted",
		"task_id": info.ID,
		"format":  format,
		"quality": quality,
		"dpi":     quality.DPI(),
	})
}

// GetDownloadLink 生成最近一次导出产物的预签名下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	model, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}

	if model.ArtifactKey == "" || model.Status != database.ExportStatusCompleted {
		Conflict(c, "export not ready")
		return
	}

	filename := model.ArtifactName
	if filename == "" {
		filename = export.EnsureExtension(model.Name, export.Format(model.ArtifactFormat))
	}
	params := map[string]string{
		"response-content-disposition": mime.FormatMediaType("attachment", map[string]string{"filename": filename}),
	}
	signedURL, err := h.storage.GeneratePresignedURLWithParams(c.Request.Context(), model.ArtifactKey, 5*time.Minute, params)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      signedURL,
		"filename": filename,
		"format":   model.ArtifactFormat,
		"pages":    model.ArtifactPages,
	})
}

// resumeFromRequest 读取 :id 对应且属于当前用户的简历，失败时已写好响应。
func (h *ResumeHandler) resumeFromRequest(c *gin.Context) (*database.Resume, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, false
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidResumeID):
			BadRequest(c, "invalid resume id")
		case errors.Is(err, gorm.ErrRecordNotFound):
			NotFound(c, "resume not found")
		default:
			Internal(c, "failed to query resume")
		}
		return nil, false
	}
	return model, true
}

func (h *ResumeHandler) getResumeForUser(ctx context.Context, idParam string, userID uint) (*database.Resume, error) {
	resumeID, err := strconv.ParseUint(strings.TrimSpace(idParam), 10, 64)
	if err != nil || resumeID == 0 {
		return nil, errInvalidResumeID
	}

	var model database.Resume
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", uint(resumeID), userID).
		First(&model).Error; err != nil {
		return nil, err
	}
	return &model, nil
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	return middleware.UserID(c)
}

const defaultResumeName = "My Resume"

func newResumeResponse(model database.Resume) resumeResponse {
	return resumeResponse{
		ID:           model.ID,
		Name:         model.Name,
		TemplateID:   model.TemplateID,
		SectionOrder: model.SectionOrder,
		Data:         model.Data,
		Status:       model.Status,
		Format:       model.ArtifactFormat,
		Pages:        model.ArtifactPages,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
