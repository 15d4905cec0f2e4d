package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"resumeStudio/internal/assets"
	"resumeStudio/internal/database"
	"resumeStudio/internal/document"
	"resumeStudio/internal/errcode"
	"resumeStudio/internal/export"
	"resumeStudio/internal/metrics"
	"resumeStudio/internal/render"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/storage"
	"resumeStudio/internal/tasks"
	"resumeStudio/internal/templates"
)

// Exporter 是 worker 依赖的导出能力，由 export.Exporter 实现。
type Exporter interface {
	Export(ctx context.Context, doc *document.Document, filename string, f export.Format, q export.Quality) (*export.Artifact, error)
	ExportImage(ctx context.Context, doc *document.Document, filename string, q export.Quality) (*export.Artifact, error)
}

// ExportTaskHandler 负责消费简历导出任务。
type ExportTaskHandler struct {
	db       *gorm.DB
	storage  storage.ObjectStore
	exporter Exporter
	notifier Notifier
	logger   *slog.Logger
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(
	db *gorm.DB,
	storageClient storage.ObjectStore,
	exporter Exporter,
	notifier Notifier,
	logger *slog.Logger,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:       db,
		storage:  storageClient,
		exporter: exporter,
		notifier: notifier,
		logger:   logger,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.ResumeExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	format, err := export.ParseFormat(payload.Format)
	if err != nil {
		log.Error("invalid export format", slog.String("format", payload.Format))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	quality := export.ParseQuality(payload.Quality)

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Uint64("resume_id", uint64(payload.ResumeID)),
		slog.String("format", string(format)),
		slog.String("quality", string(quality)),
	)
	log.Info("Starting resume export task...")

	var model database.Resume
	if err := h.db.WithContext(ctx).First(&model, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(model.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		metrics.ExportFailed(string(format))
		if !isFinalAsynqAttempt(ctx) {
			return
		}
		// 通知与状态更新不受任务 ctx 取消影响。
		bg := context.WithoutCancel(ctx)
		if err := h.db.WithContext(bg).Model(&model).Update("status", database.ExportStatusFailed).Error; err != nil {
			log.Error("mark export failed", slog.Any("error", err))
		}
		notify := ExportNotifyMessage{
			Status:        "error",
			ResumeID:      model.ID,
			CorrelationID: payload.CorrelationID,
			Format:        string(format),
			ErrorCode:     errcode.Classify(retErr, export.ErrRasterize),
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.notifier.Notify(bg, model.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	doc, warning, err := BuildDocument(ctx, h.storage, &model)
	if err != nil {
		log.Error("build document failed", slog.Any("error", err))
		return err
	}

	filename := payload.Filename
	if strings.TrimSpace(filename) == "" {
		filename = model.Name
	}

	art, err := h.exporter.Export(ctx, doc, filename, format, quality)
	if err != nil {
		log.Error("export failed", slog.Any("error", err))
		return err
	}
	if art == nil {
		return errors.New("exporter produced no artifact")
	}

	objectName := storage.ExportKey(model.UserID, model.ID, uuid.NewString(), string(format))
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(art.Data), int64(len(art.Data)), art.ContentType); err != nil {
		log.Error("upload artifact to minio failed", slog.Any("error", err))
		return err
	}

	previousKey := model.ArtifactKey
	update := map[string]any{
		"artifact_key":    objectName,
		"artifact_format": string(format),
		"artifact_pages":  art.Pages,
		"artifact_name":   art.Filename,
		"status":          database.ExportStatusCompleted,
	}
	if err := h.db.WithContext(ctx).Model(&model).Updates(update).Error; err != nil {
		log.Error("update resume failed", slog.Any("error", err))
		return err
	}
	if previousKey != "" && previousKey != objectName {
		if err := h.storage.DeleteObject(ctx, previousKey); err != nil {
			log.Warn("delete previous artifact failed", slog.String("object_key", previousKey), slog.Any("error", err))
		}
	}

	metrics.ObserveExport(string(format), string(quality), art.Elapsed, len(art.Data), art.Pages)

	notify := ExportNotifyMessage{
		Status:        "completed",
		ResumeID:      model.ID,
		CorrelationID: payload.CorrelationID,
		Format:        string(format),
		Filename:      art.Filename,
		Pages:         art.Pages,
		ErrorCode:     errcode.OK,
	}
	if warning != nil {
		notify.ErrorCode = warning.Code
		notify.ErrorMessage = warning.Message
		notify.MissingKeys = warning.MissingKeys
		log.Warn("export finished with missing assets", slog.Any("missing_keys", warning.MissingKeys))
	}
	// 产物已落库，通知失败不能再把任务判为失败，否则状态会被回滚并重复通知。
	if err := h.notifier.Notify(ctx, model.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
	}

	log.Info("Resume export task completed successfully.",
		slog.Int("pages", art.Pages),
		slog.Int("bytes", len(art.Data)),
		slog.Duration("elapsed", art.Elapsed),
	)
	return nil
}

// BuildDocument 解码存储的简历、内联头像并按所选模板生成文档。
// API 的服务端预览与导出任务共用它，保证两者看到的是同一棵文档树。
func BuildDocument(ctx context.Context, store assets.ObjectReader, model *database.Resume) (*document.Document, *assets.Warning, error) {
	data, err := resume.Decode(model.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode resume data: %w", err)
	}

	data, warning, err := assets.InlinePhoto(ctx, store, model.UserID, data)
	if err != nil {
		return nil, nil, err
	}

	var order []resume.SectionType
	if model.SectionOrder != nil {
		order = resume.ParseSectionOrder(model.SectionOrder)
	}
	return render.Render(data, templates.Lookup(model.TemplateID), order), warning, nil
}

// isFinalAsynqAttempt 在拿不到重试信息时（例如直接调用）视为最后一次。
func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return true
	}
	return retryCount >= maxRetry
}
