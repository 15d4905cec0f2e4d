package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveExport(t *testing.T) {
	ObserveExport("pdf", "high", 2*time.Second, 1024, 2)
	if testutil.CollectAndCount(exportDuration) == 0 {
		t.Fatal("duration series missing")
	}

	ExportFailed("png")
	if got := testutil.ToFloat64(exportFailures.WithLabelValues("png")); got < 1 {
		t.Fatalf("expected failure counted, got %v", got)
	}
}

func TestAsynqMetricsMiddleware(t *testing.T) {
	boom := errors.New("boom")
	h := AsynqMetricsMiddleware()(asynq.HandlerFunc(func(context.Context, *asynq.Task) error {
		return boom
	}))
	if err := h.ProcessTask(context.Background(), asynq.NewTask("test:fail", nil)); !errors.Is(err, boom) {
		t.Fatalf("error must pass through, got %v", err)
	}
	if got := testutil.ToFloat64(tasksTotal.WithLabelValues("test:fail", outcomeError)); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}

	skip := AsynqMetricsMiddleware()(asynq.HandlerFunc(func(context.Context, *asynq.Task) error {
		return fmt.Errorf("%w: bad payload", asynq.SkipRetry)
	}))
	_ = skip.ProcessTask(context.Background(), asynq.NewTask("test:skip", nil))
	if got := testutil.ToFloat64(tasksTotal.WithLabelValues("test:skip", outcomeSkipped)); got != 1 {
		t.Fatalf("expected 1 skipped, got %v", got)
	}
	if got := testutil.ToFloat64(tasksInProgress.WithLabelValues("test:skip")); got != 0 {
		t.Fatalf("in-progress gauge must return to 0, got %v", got)
	}
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/items/:id", func(c *gin.Context) { c.String(http.StatusOK, "item") })

	for _, path := range []string{"/items/1", "/items/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	if got := testutil.CollectAndCount(requestDuration); got != 2 {
		t.Fatalf("expected route template and unmatched series, got %d", got)
	}
	if statusClass(204) != "2xx" || statusClass(503) != "5xx" {
		t.Fatal("unexpected status classes")
	}
}
