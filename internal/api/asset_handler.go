package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"

	"resumeStudio/internal/api/middleware"
	"resumeStudio/internal/config"
	"resumeStudio/internal/database"
	"resumeStudio/internal/storage"
)

var errMaliciousFile = errors.New("malicious file detected")

// assetStorage 是上传头像用到的对象存储子集。
type assetStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

type assetStore interface {
	Create(ctx context.Context, asset database.Asset) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]database.Asset, error)
	Delete(ctx context.Context, userID uint, objectKey string) (bool, error)
}

type gormAssetStore struct {
	db *gorm.DB
}

func newGormAssetStore(db *gorm.DB) *gormAssetStore {
	return &gormAssetStore{db: db}
}

func (s *gormAssetStore) Create(ctx context.Context, asset database.Asset) error {
	return s.db.WithContext(ctx).Create(&asset).Error
}

func (s *gormAssetStore) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&database.Asset{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *gormAssetStore) ListByUser(ctx context.Context, userID uint, limit int) ([]database.Asset, error) {
	var assets []database.Asset
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&assets).Error
	return assets, err
}

func (s *gormAssetStore) Delete(ctx context.Context, userID uint, objectKey string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND object_key = ?", userID, objectKey).
		Delete(&database.Asset{})
	return res.RowsAffected > 0, res.Error
}

// AssetHandler 负责头像上传与访问。
type AssetHandler struct {
	store         assetStore
	Storage       assetStorage
	Logger        *slog.Logger
	ClamdAddr     string
	MaxBytes      int64
	MIMEWhitelist []string
	RedisClient   redisRateCounter

	maxAssetsPerUser int
	maxUploadsPerDay int
}

// NewAssetHandler 返回 AssetHandler 实例。
func NewAssetHandler(db *gorm.DB, storageClient assetStorage, redisClient redisRateCounter, logger *slog.Logger, cfg config.APIConfig) *AssetHandler {
	return &AssetHandler{
		store:            newGormAssetStore(db),
		Storage:          storageClient,
		Logger:           logger,
		ClamdAddr:        cfg.ClamdAddr,
		MaxBytes:         cfg.AssetMaxBytes,
		MIMEWhitelist:    cfg.AssetMIMEWhitelist,
		RedisClient:      redisClient,
		maxAssetsPerUser: cfg.MaxAssetsPerUser,
		maxUploadsPerDay: cfg.MaxUploadsPerDay,
	}
}

func (h *AssetHandler) log(c *gin.Context) *slog.Logger {
	return middleware.LoggerFromContextOr(c, h.Logger)
}

var mimeExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// UploadAsset 处理头像上传：数量与频率限制、类型嗅探、病毒扫描，然后写入对象存储。
func (h *AssetHandler) UploadAsset(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	ctx := c.Request.Context()
	logger := h.log(c).With(slog.Uint64("user_id", uint64(userID)))

	if h.maxAssetsPerUser > 0 {
		count, err := h.store.CountByUser(ctx, userID)
		if err != nil {
			logger.Error("count assets", slog.Any("error", err))
			Internal(c, "failed to count assets")
			return
		}
		if count >= int64(h.maxAssetsPerUser) {
			Forbidden(c, "asset limit reached")
			return
		}
	}

	if h.maxUploadsPerDay > 0 && h.RedisClient != nil {
		key := fmt.Sprintf("rate:upload:%d:%s", userID, time.Now().UTC().Format("20060102"))
		count, err := incrWithTTL(ctx, h.RedisClient, key, 24*time.Hour)
		if err != nil {
			// Redis 不可用时放行，只记录日志。
			logger.Warn("upload rate counter unavailable", slog.Any("error", err))
		} else if count > int64(h.maxUploadsPerDay) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "upload rate limit exceeded"})
			return
		}
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if h.MaxBytes > 0 && file.Size > h.MaxBytes {
		Error(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	fileReader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	content, err := io.ReadAll(fileReader)
	fileReader.Close()
	if err != nil {
		Internal(c, "failed to read file")
		return
	}

	// 只信任内容嗅探的结果，不信任客户端声明的 Content-Type。
	contentType := http.DetectContentType(content)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, known := mimeExtensions[contentType]
	if !known || (len(h.MIMEWhitelist) > 0 && !slices.Contains(h.MIMEWhitelist, contentType)) {
		Error(c, http.StatusUnsupportedMediaType, "unsupported file type")
		return
	}

	if err := h.scan(content); err != nil {
		if errors.Is(err, errMaliciousFile) {
			logger.Warn("malicious upload rejected", slog.String("filename", file.Filename))
			BadRequest(c, "malicious file detected")
			return
		}
		logger.Error("scan file", slog.Any("error", err))
		Internal(c, "failed to scan file")
		return
	}

	objectKey := storage.UserAssetKey(userID, uuid.NewString(), ext)
	if _, err := h.Storage.UploadFile(ctx, objectKey, bytes.NewReader(content), int64(len(content)), contentType); err != nil {
		logger.Error("upload file", slog.Any("error", err))
		Internal(c, "failed to upload file")
		return
	}

	if err := h.store.Create(ctx, database.Asset{
		UserID:      userID,
		ObjectKey:   objectKey,
		ContentType: contentType,
		Size:        int64(len(content)),
	}); err != nil {
		logger.Error("record asset", slog.Any("error", err))
		_ = h.Storage.DeleteObject(context.WithoutCancel(ctx), objectKey)
		Internal(c, "failed to record asset")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"objectKey": objectKey})
}

// scan 通过 clamd 扫描内容；未配置地址时跳过。
func (h *AssetHandler) scan(content []byte) error {
	if strings.TrimSpace(h.ClamdAddr) == "" {
		return nil
	}
	clamdClient := clamd.NewClamd(h.ClamdAddr)

	abortChan := make(chan bool)
	defer close(abortChan)
	scanChan, err := clamdClient.ScanStream(bytes.NewReader(content), abortChan)
	if err != nil {
		return err
	}
	var found bool
	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			found = true
		}
	}
	if found {
		return errMaliciousFile
	}
	return nil
}

// ListAssets 列出用户上传的资产。
func (h *AssetHandler) ListAssets(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "60"))
	if err != nil || limit <= 0 {
		limit = 60
	}
	limit = min(limit, 200)

	ctx := c.Request.Context()
	assets, err := h.store.ListByUser(ctx, userID, limit)
	if err != nil {
		h.log(c).Error("list assets", slog.Any("error", err))
		Internal(c, "failed to list assets")
		return
	}

	items := make([]gin.H, 0, len(assets))
	for _, a := range assets {
		url, err := h.Storage.GeneratePresignedURL(ctx, a.ObjectKey, 10*time.Minute)
		if err != nil {
			h.log(c).Error("generate asset url", slog.String("objectKey", a.ObjectKey), slog.Any("error", err))
			continue
		}
		items = append(items, gin.H{
			"objectKey":    a.ObjectKey,
			"previewUrl":   url,
			"size":         a.Size,
			"contentType":  a.ContentType,
			"lastModified": a.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetAssetURL 返回资产的临时预签名 URL。
func (h *AssetHandler) GetAssetURL(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	objectKey := c.Query("key")
	if objectKey == "" {
		BadRequest(c, "missing key")
		return
	}
	if !storage.IsValidUserAssetKey(userID, objectKey) {
		Forbidden(c, "access denied")
		return
	}

	signedURL, err := h.Storage.GeneratePresignedURL(c.Request.Context(), objectKey, 15*time.Minute)
	if err != nil {
		h.log(c).Error("generate presigned url", slog.Any("error", err))
		Internal(c, "failed to generate url")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

// DeleteAsset 删除一张头像；已引用它的简历在导出时会得到资源缺失告警。
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	objectKey := c.Query("key")
	if !storage.IsValidUserAssetKey(userID, objectKey) {
		Forbidden(c, "access denied")
		return
	}

	ctx := c.Request.Context()
	deleted, err := h.store.Delete(ctx, userID, objectKey)
	if err != nil {
		h.log(c).Error("delete asset record", slog.Any("error", err))
		Internal(c, "failed to delete asset")
		return
	}
	if !deleted {
		NotFound(c, "asset not found")
		return
	}
	if err := h.Storage.DeleteObject(ctx, objectKey); err != nil {
		h.log(c).Error("delete asset object", slog.String("objectKey", objectKey), slog.Any("error", err))
	}
	c.Status(http.StatusNoContent)
}
