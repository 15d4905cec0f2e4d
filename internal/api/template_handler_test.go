package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resumeStudio/internal/database"
	"resumeStudio/internal/tasks"
	"resumeStudio/internal/templates"
)

func newTemplateRouter(t *testing.T) (*gin.Engine, *fakeQueue, *TemplateHandler) {
	t.Helper()
	queue := &fakeQueue{}
	h := NewTemplateHandler(newTestDB(t), newFakeStorage(), queue, 794, false)
	r := gin.New()
	r.GET("/v1/templates", h.ListTemplates)
	r.GET("/v1/templates/categories", h.ListCategories)
	r.GET("/v1/templates/:id", h.GetTemplate)
	r.GET("/v1/templates/:id/thumbnail", h.GetThumbnail)
	r.GET("/v1/templates/:id/preview", h.PreviewTemplate)
	r.POST("/internal/templates/thumbnails", h.RegenerateThumbnails)
	return r, queue, h
}

func TestListTemplatesFilters(t *testing.T) {
	r, _, _ := newTemplateRouter(t)

	var resp struct {
		Items []templates.Descriptor `json:"items"`
		Total int                    `json:"total"`
	}
	decodeBody(t, doJSON(t, r, http.MethodGet, "/v1/templates", nil), &resp)
	if resp.Total != len(templates.All()) {
		t.Fatalf("expected full catalog, got %d", resp.Total)
	}

	decodeBody(t, doJSON(t, r, http.MethodGet, "/v1/templates?category=ats&q=pro", nil), &resp)
	for _, d := range resp.Items {
		if d.Category != templates.CategoryATS || !strings.Contains(strings.ToLower(d.Name), "pro") {
			t.Fatalf("filter leaked %+v", d)
		}
	}
	if resp.Total == 0 {
		t.Fatal("expected at least one ATS template matching 'pro'")
	}

	var cats []templates.CategoryInfo
	decodeBody(t, doJSON(t, r, http.MethodGet, "/v1/templates/categories", nil), &cats)
	if len(cats) == 0 || cats[0].Key != templates.CategoryAll || cats[0].Count != len(templates.All()) {
		t.Fatalf("unexpected categories %+v", cats)
	}
}

func TestGetTemplateAndThumbnail(t *testing.T) {
	r, _, h := newTemplateRouter(t)

	if w := doJSON(t, r, http.MethodGet, "/v1/templates/nope", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	var desc templates.Descriptor
	decodeBody(t, doJSON(t, r, http.MethodGet, "/v1/templates/modern-02", nil), &desc)
	if desc.Name != "Apex" {
		t.Fatalf("unexpected descriptor %+v", desc)
	}

	if w := doJSON(t, r, http.MethodGet, "/v1/templates/modern-02/thumbnail", nil); w.Code != http.StatusNotFound {
		t.Fatalf("thumbnail not generated yet, got %d", w.Code)
	}
	h.db.Create(&database.TemplateThumbnail{TemplateID: "modern-02", ObjectKey: "thumbnails/template/modern-02.png"})
	w := doJSON(t, r, http.MethodGet, "/v1/templates/modern-02/thumbnail", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "thumbnails/template/modern-02.png") {
		t.Fatalf("unexpected thumbnail response %d %s", w.Code, w.Body.String())
	}
}

func TestPreviewTemplateUsesSample(t *testing.T) {
	r, _, _ := newTemplateRouter(t)
	w := doJSON(t, r, http.MethodGet, "/v1/templates/creative-01/preview?width=1600", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	// 最大宽度限制住缩放比例。
	if got := w.Header().Get("X-Preview-Scale"); got != "1" {
		t.Fatalf("expected scale 1 got %q", got)
	}
	if !strings.Contains(w.Body.String(), "Alex Johnson") {
		t.Fatal("preview should render the sample resume")
	}
}

func TestRegenerateThumbnails(t *testing.T) {
	r, queue, _ := newTemplateRouter(t)

	if w := doJSON(t, r, http.MethodPost, "/internal/templates/thumbnails", map[string]any{"template_ids": []string{"x"}}); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown id must 400, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/internal/templates/thumbnails", nil); w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d body=%s", w.Code, w.Body.String())
	}
	if len(queue.tasks) != 1 || queue.tasks[0].Type() != tasks.TypeTemplateThumbnails {
		t.Fatalf("unexpected tasks %v", queue.tasks)
	}
	var payload tasks.TemplateThumbnailsPayload
	if err := json.Unmarshal(queue.tasks[0].Payload(), &payload); err != nil || len(payload.TemplateIDs) != 0 {
		t.Fatalf("empty body should regenerate all, got %+v err=%v", payload, err)
	}
}
