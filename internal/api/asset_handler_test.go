package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumeStudio/internal/database"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newRedisCounter(t *testing.T) *redis.Client {
	t.Helper()
	// 不可达地址：计数失败时上传应当放行。
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newMultipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func newTestAssetHandler(t *testing.T) (*AssetHandler, *fakeStorage) {
	t.Helper()
	storage := newFakeStorage()
	return &AssetHandler{
		store:            newGormAssetStore(newTestDB(t)),
		Storage:          storage,
		Logger:           nil,
		ClamdAddr:        "",
		MaxBytes:         1024,
		MIMEWhitelist:    []string{"image/png"},
		RedisClient:      newRedisCounter(t),
		maxAssetsPerUser: 4,
		maxUploadsPerDay: 4,
	}, storage
}

func upload(t *testing.T, h *AssetHandler, userID uint, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := newMultipartUpload(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/v1/assets/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userID", userID)
	h.UploadAsset(c)
	return w
}

func TestUploadAsset_LimitsByCount(t *testing.T) {
	ctx := context.Background()
	h, _ := newTestAssetHandler(t)

	for i := 0; i < 4; i++ {
		objectKey := "user-assets/1/existing-" + strconv.Itoa(i) + ".png"
		if err := h.store.Create(ctx, database.Asset{UserID: 1, ObjectKey: objectKey}); err != nil {
			t.Fatalf("seed asset: %v", err)
		}
	}

	w := upload(t, h, 1, "a.png", pngHeader)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUploadAsset_StoresSniffedPNG(t *testing.T) {
	h, storage := newTestAssetHandler(t)

	// 文件名与声明类型都不可信，扩展名来自内容嗅探。
	w := upload(t, h, 7, "avatar.gif", pngHeader)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		ObjectKey string `json:"objectKey"`
	}
	decodeBody(t, w, &resp)
	if !strings.HasPrefix(resp.ObjectKey, "user-assets/7/") || !strings.HasSuffix(resp.ObjectKey, ".png") {
		t.Fatalf("unexpected key %q", resp.ObjectKey)
	}
	if !bytes.Equal(storage.uploaded[resp.ObjectKey], pngHeader) {
		t.Fatal("uploaded content mismatch")
	}
	count, err := h.store.CountByUser(context.Background(), 7)
	if err != nil || count != 1 {
		t.Fatalf("expected one asset row, got %d err=%v", count, err)
	}
}

func TestUploadAsset_RejectsTypeAndSize(t *testing.T) {
	h, storage := newTestAssetHandler(t)

	if w := upload(t, h, 1, "a.png", []byte("<html><body>hi</body></html>")); w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415 got %d", w.Code)
	}
	if w := upload(t, h, 1, "a.png", append(pngHeader, make([]byte, 2048)...)); w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d", w.Code)
	}
	if len(storage.uploaded) != 0 {
		t.Fatalf("nothing should be uploaded, got %d", len(storage.uploaded))
	}
}

func TestAssetURLAndDelete(t *testing.T) {
	ctx := context.Background()
	h, storage := newTestAssetHandler(t)
	key := "user-assets/3/photo.png"
	storage.uploaded[key] = pngHeader
	if err := h.store.Create(ctx, database.Asset{UserID: 3, ObjectKey: key}); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	r := gin.New()
	r.Use(withUser(3))
	r.GET("/v1/assets", h.ListAssets)
	r.GET("/v1/assets/view", h.GetAssetURL)
	r.DELETE("/v1/assets", h.DeleteAsset)

	if w := doJSON(t, r, http.MethodGet, "/v1/assets/view?key=user-assets/4/photo.png", nil); w.Code != http.StatusForbidden {
		t.Fatalf("foreign key must be forbidden, got %d", w.Code)
	}
	w := doJSON(t, r, http.MethodGet, "/v1/assets/view?key="+key, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), key) {
		t.Fatalf("unexpected view response %d %s", w.Code, w.Body.String())
	}

	var list struct {
		Items []map[string]any `json:"items"`
	}
	w = doJSON(t, r, http.MethodGet, "/v1/assets", nil)
	decodeBody(t, w, &list)
	if len(list.Items) != 1 || list.Items[0]["objectKey"] != key {
		t.Fatalf("unexpected list %v", list.Items)
	}

	if w := doJSON(t, r, http.MethodDelete, "/v1/assets?key="+key, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}
	if _, ok := storage.uploaded[key]; ok {
		t.Fatal("object should be deleted")
	}
	if w := doJSON(t, r, http.MethodDelete, "/v1/assets?key="+key, nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete should 404, got %d", w.Code)
	}
}
