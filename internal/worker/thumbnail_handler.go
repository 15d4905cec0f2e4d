package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resumeStudio/internal/database"
	"resumeStudio/internal/export"
	"resumeStudio/internal/render"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/storage"
	"resumeStudio/internal/tasks"
	"resumeStudio/internal/templates"
)

// ThumbnailTaskHandler 用示例简历为内置模板生成缩略图。
type ThumbnailTaskHandler struct {
	db          *gorm.DB
	storage     storage.ObjectStore
	exporter    Exporter
	logger      *slog.Logger
	concurrency int
}

func NewThumbnailTaskHandler(
	db *gorm.DB,
	storageClient storage.ObjectStore,
	exporter Exporter,
	logger *slog.Logger,
	concurrency int,
) *ThumbnailTaskHandler {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &ThumbnailTaskHandler{
		db:          db,
		storage:     storageClient,
		exporter:    exporter,
		logger:      logger,
		concurrency: concurrency,
	}
}

func (h *ThumbnailTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.TemplateThumbnailsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("unmarshal thumbnail payload failed", slog.Any("error", err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	targets, err := resolveTemplates(payload.TemplateIDs)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	log := h.logger.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("templates", len(targets)),
	)
	log.Info("Starting template thumbnail generation task...")

	sample := resume.Sample()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)
	for _, desc := range targets {
		g.Go(func() error {
			if err := h.generate(gctx, desc, sample); err != nil {
				return fmt.Errorf("template %s: %w", desc.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("thumbnail generation failed", slog.Any("error", err))
		return err
	}

	log.Info("Template thumbnail generation completed.")
	return nil
}

func (h *ThumbnailTaskHandler) generate(ctx context.Context, desc templates.Descriptor, sample resume.Data) error {
	doc := render.Render(sample, desc, nil)
	art, err := h.exporter.ExportImage(ctx, doc, desc.ID, export.QualityLow)
	if err != nil {
		return err
	}

	objectName := storage.ThumbnailKey(desc.ID)
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(art.Data), int64(len(art.Data)), art.ContentType); err != nil {
		return fmt.Errorf("upload thumbnail: %w", err)
	}

	row := database.TemplateThumbnail{TemplateID: desc.ID, ObjectKey: objectName}
	if err := h.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "template_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"object_key", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("save thumbnail row: %w", err)
	}

	h.logger.Debug("thumbnail generated", slog.String("template_id", desc.ID), slog.Int("bytes", len(art.Data)))
	return nil
}

// resolveTemplates 为空时返回全部模板；未知 ID 直接报错。
func resolveTemplates(ids []string) ([]templates.Descriptor, error) {
	if len(ids) == 0 {
		return templates.All(), nil
	}
	out := make([]templates.Descriptor, 0, len(ids))
	for _, id := range ids {
		desc, ok := templates.Find(id)
		if !ok {
			return nil, fmt.Errorf("unknown template %q", id)
		}
		out = append(out, desc)
	}
	return out, nil
}
