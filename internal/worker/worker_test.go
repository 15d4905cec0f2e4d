package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeStudio/internal/database"
	"resumeStudio/internal/errcode"
	"resumeStudio/internal/export"
	"resumeStudio/internal/storage"
	"resumeStudio/internal/tasks"
)

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (s *memStorage) UploadFile(_ context.Context, name string, r io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = b
	return &minio.UploadInfo{Key: name, Size: int64(len(b))}, nil
}

func (s *memStorage) ReadObject(_ context.Context, key string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[key]
	if !ok {
		return nil, "", minio.ErrorResponse{Code: "NoSuchKey"}
	}
	return b, "image/png", nil
}

func (s *memStorage) GeneratePresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://example.invalid/" + key, nil
}

func (s *memStorage) GeneratePresignedURLWithParams(ctx context.Context, key string, d time.Duration, _ map[string]string) (string, error) {
	return s.GeneratePresignedURL(ctx, key, d)
}

func (s *memStorage) DeleteObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

func (s *memStorage) DeletePrefix(context.Context, string) error { return nil }

func (s *memStorage) keys(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []ExportNotifyMessage
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, _ uint, msg ExportNotifyMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return n.err
}

// blankRasterizer 返回指定高度的空白位图。
type blankRasterizer struct {
	height int
	err    error
	calls  int
	mu     sync.Mutex
}

func (b *blankRasterizer) Prepare(context.Context, *export.Snapshot) (export.Capture, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	return blankCapture{height: b.height}, nil
}

type blankCapture struct{ height int }

func (c blankCapture) ContentHeight() int { return c.height }
func (c blankCapture) Close() error       { return nil }
func (c blankCapture) Rasterize(_ context.Context, scale float64) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, int(794*scale), int(float64(c.height)*scale))), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	// 缩略图任务会并发写库，单连接避免 sqlite 表锁。
	db, err := database.Open(sqlite.Open(dsn), database.PoolConfig{MaxOpenConns: 1}, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedResume(t *testing.T, db *gorm.DB, data string) database.Resume {
	t.Helper()
	user := database.User{Username: "u-" + t.Name(), PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	r := database.Resume{
		Name:       "Jane Doe CV",
		TemplateID: "modern-06",
		Data:       []byte(data),
		UserID:     user.ID,
		Status:     database.ExportStatusPending,
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return r
}

func exportTask(t *testing.T, p tasks.ResumeExportPayload) *asynq.Task {
	t.Helper()
	task, err := tasks.NewResumeExportTask(p)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func TestExportTaskUploadsAndNotifies(t *testing.T) {
	db := newTestDB(t)
	store := newMemStorage()
	notifier := &recordingNotifier{}
	exporter := export.NewExporter(&blankRasterizer{height: 2000}, testLogger())
	h := NewExportTaskHandler(db, store, exporter, notifier, testLogger())

	r := seedResume(t, db, `{"personalInfo":{"fullName":"Jane Doe"},"skills":["Go"]}`)
	err := h.ProcessTask(context.Background(), exportTask(t, tasks.ResumeExportPayload{
		ResumeID: r.ID, Format: "pdf", Quality: "low", CorrelationID: "cid-1",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	var got database.Resume
	if err := db.First(&got, r.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != database.ExportStatusCompleted || got.ArtifactFormat != "pdf" || got.ArtifactPages != 2 {
		t.Fatalf("unexpected resume state %+v", got)
	}
	if !strings.HasPrefix(got.ArtifactKey, storage.ExportPrefix(r.UserID, r.ID)) || !strings.HasSuffix(got.ArtifactKey, ".pdf") {
		t.Fatalf("unexpected artifact key %q", got.ArtifactKey)
	}
	if data := store.objects[got.ArtifactKey]; !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatal("uploaded artifact is not a pdf")
	}

	if len(notifier.msgs) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.msgs))
	}
	msg := notifier.msgs[0]
	if msg.Status != "completed" || msg.ErrorCode != errcode.OK || msg.Filename != "Jane Doe CV.pdf" || msg.CorrelationID != "cid-1" {
		t.Fatalf("unexpected notification %+v", msg)
	}
}

func TestExportTaskReplacesPreviousArtifact(t *testing.T) {
	db := newTestDB(t)
	store := newMemStorage()
	h := NewExportTaskHandler(db, store, export.NewExporter(&blankRasterizer{height: 100}, testLogger()), &recordingNotifier{}, testLogger())

	r := seedResume(t, db, `{"personalInfo":{"fullName":"Jane Doe"}}`)
	for i := 0; i < 2; i++ {
		if err := h.ProcessTask(context.Background(), exportTask(t, tasks.ResumeExportPayload{ResumeID: r.ID, Format: "png"})); err != nil {
			t.Fatalf("process %d: %v", i, err)
		}
	}
	if keys := store.keys(storage.ExportPrefix(r.UserID, r.ID)); len(keys) != 1 {
		t.Fatalf("expected only the latest artifact, got %v", keys)
	}
	if len(store.deleted) != 1 {
		t.Fatalf("previous artifact must be deleted, deleted=%v", store.deleted)
	}
}

func TestExportTaskMissingPhotoWarns(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	h := NewExportTaskHandler(db, newMemStorage(), export.NewExporter(&blankRasterizer{height: 100}, testLogger()), notifier, testLogger())

	user := database.User{Username: "photo-user", PasswordHash: "x"}
	db.Create(&user)
	key := storage.UserAssetKey(user.ID, "gone", "png")
	data, _ := json.Marshal(map[string]any{"personalInfo": map[string]any{"fullName": "Jane", "photo": key}})
	r := database.Resume{Name: "cv", TemplateID: "modern-01", Data: data, UserID: user.ID}
	db.Create(&r)

	if err := h.ProcessTask(context.Background(), exportTask(t, tasks.ResumeExportPayload{ResumeID: r.ID, Format: "png"})); err != nil {
		t.Fatalf("process: %v", err)
	}
	msg := notifier.msgs[0]
	if msg.Status != "completed" || msg.ErrorCode != errcode.ResourceMissing || len(msg.MissingKeys) != 1 || msg.MissingKeys[0] != key {
		t.Fatalf("unexpected notification %+v", msg)
	}
}

func TestExportTaskFailureNotifiesOnce(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	boom := errors.New("chromium crashed")
	h := NewExportTaskHandler(db, newMemStorage(), export.NewExporter(&blankRasterizer{err: boom}, testLogger()), notifier, testLogger())

	r := seedResume(t, db, `{"personalInfo":{"fullName":"Jane Doe"}}`)
	err := h.ProcessTask(context.Background(), exportTask(t, tasks.ResumeExportPayload{ResumeID: r.ID, Format: "pdf"}))
	if !errors.Is(err, export.ErrRasterize) || !errors.Is(err, boom) {
		t.Fatalf("expected rasterize error, got %v", err)
	}

	var got database.Resume
	db.First(&got, r.ID)
	if got.Status != database.ExportStatusFailed {
		t.Fatalf("expected failed status, got %q", got.Status)
	}
	if len(notifier.msgs) != 1 || notifier.msgs[0].Status != "error" || notifier.msgs[0].ErrorCode != errcode.RasterizeFailed {
		t.Fatalf("unexpected notifications %+v", notifier.msgs)
	}
}

func TestExportTaskKeepsArtifactWhenNotifyFails(t *testing.T) {
	db := newTestDB(t)
	store := newMemStorage()
	notifier := &recordingNotifier{err: errors.New("redis down")}
	h := NewExportTaskHandler(db, store, export.NewExporter(&blankRasterizer{height: 100}, testLogger()), notifier, testLogger())

	r := seedResume(t, db, `{"personalInfo":{"fullName":"Jane Doe"}}`)
	if err := h.ProcessTask(context.Background(), exportTask(t, tasks.ResumeExportPayload{ResumeID: r.ID, Format: "png"})); err != nil {
		t.Fatalf("publish failure must not fail a finished export: %v", err)
	}

	var got database.Resume
	db.First(&got, r.ID)
	if got.Status != database.ExportStatusCompleted || got.ArtifactKey == "" {
		t.Fatalf("unexpected resume state %+v", got)
	}
	if _, ok := store.objects[got.ArtifactKey]; !ok {
		t.Fatalf("artifact %q missing from storage", got.ArtifactKey)
	}
	if len(notifier.msgs) != 1 || notifier.msgs[0].Status != "completed" {
		t.Fatalf("expected a single completed notification, got %+v", notifier.msgs)
	}
}

func TestExportTaskSkipsUnknownResumeAndBadFormat(t *testing.T) {
	db := newTestDB(t)
	rast := &blankRasterizer{height: 100}
	h := NewExportTaskHandler(db, newMemStorage(), export.NewExporter(rast, testLogger()), &recordingNotifier{}, testLogger())

	if err := h.ProcessTask(context.Background(), exportTask(t, tasks.ResumeExportPayload{ResumeID: 999, Format: "pdf"})); err != nil {
		t.Fatalf("missing resume should be skipped, got %v", err)
	}
	err := h.ProcessTask(context.Background(), exportTask(t, tasks.ResumeExportPayload{ResumeID: 1, Format: "gif"}))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("bad format must skip retry, got %v", err)
	}
	if rast.calls != 0 {
		t.Fatal("rasterizer must not run")
	}
}

func TestThumbnailTask(t *testing.T) {
	db := newTestDB(t)
	store := newMemStorage()
	rast := &blankRasterizer{height: 1123}
	h := NewThumbnailTaskHandler(db, store, export.NewExporter(rast, testLogger()), testLogger(), 3)

	task, _ := tasks.NewTemplateThumbnailsTask(tasks.TemplateThumbnailsPayload{TemplateIDs: []string{"modern-01", "creative-07", "ats-01"}})
	if err := h.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("process: %v", err)
	}
	if rast.calls != 3 {
		t.Fatalf("expected 3 renders, got %d", rast.calls)
	}
	var rows []database.TemplateThumbnail
	db.Order("template_id").Find(&rows)
	if len(rows) != 3 || rows[0].ObjectKey != storage.ThumbnailKey(rows[0].TemplateID) {
		t.Fatalf("unexpected rows %+v", rows)
	}

	// 再跑一次应覆盖而不是重复插入。
	if err := h.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("second run: %v", err)
	}
	var count int64
	db.Model(&database.TemplateThumbnail{}).Count(&count)
	if count != 3 {
		t.Fatalf("expected 3 rows after rerun, got %d", count)
	}

	bad, _ := tasks.NewTemplateThumbnailsTask(tasks.TemplateThumbnailsPayload{TemplateIDs: []string{"nope"}})
	if err := h.ProcessTask(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("unknown template must skip retry, got %v", err)
	}
}
