package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 是 api、worker 与命令行工具共用的配置。
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Render   RenderConfig   `mapstructure:"render"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// APIConfig 是 HTTP 服务与上传限制相关的配置。
type APIConfig struct {
	Port           int      `mapstructure:"port"`
	InternalSecret string   `mapstructure:"internal_secret"`
	ClamdAddr      string   `mapstructure:"clamd_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxResumes     int      `mapstructure:"max_resumes"`
	// PreviewMaxWidth 是预览缩放的上限宽度（px）。
	PreviewMaxWidth float64 `mapstructure:"preview_max_width"`

	AssetMaxBytes      int64    `mapstructure:"asset_max_bytes"`
	AssetMIMEWhitelist []string `mapstructure:"asset_mime_whitelist"`
	MaxAssetsPerUser   int      `mapstructure:"max_assets_per_user"`
	MaxUploadsPerDay   int      `mapstructure:"max_uploads_per_day"`
}

// DatabaseConfig 描述 PostgreSQL 连接与连接池。
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr 返回 host:port。
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig 描述 S3 兼容的对象存储。PublicEndpoint 为空时由 Endpoint 推导。
type MinIOConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	PublicEndpoint   string `mapstructure:"public_endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	BucketLookup     string `mapstructure:"bucket_lookup"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`
}

// AuthConfig 包含 JWT 密钥与登录限流参数。
type AuthConfig struct {
	PrivateKeyPath        string        `mapstructure:"private_key_path"`
	PublicKeyPath         string        `mapstructure:"public_key_path"`
	AccessTokenTTL        time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL       time.Duration `mapstructure:"refresh_token_ttl"`
	LoginRateLimitPerHour int           `mapstructure:"login_rate_limit_per_hour"`
	LoginLockThreshold    int           `mapstructure:"login_lock_threshold"`
	LoginLockTTL          time.Duration `mapstructure:"login_lock_ttl"`
	CookieDomain          string        `mapstructure:"cookie_domain"`
}

// RenderConfig 控制无头浏览器栅格化。
type RenderConfig struct {
	Engine         string        `mapstructure:"engine"`
	ChromePath     string        `mapstructure:"chrome_path"`
	PrepareTimeout time.Duration `mapstructure:"prepare_timeout"`
	CaptureTimeout time.Duration `mapstructure:"capture_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	DefaultQuality string        `mapstructure:"default_quality"`
	// WebFonts 为 true 时在导出页面中引用 Google Fonts 样式表。
	WebFonts bool `mapstructure:"web_fonts"`
}

// WorkerConfig 控制异步任务并发。
type WorkerConfig struct {
	Concurrency          int `mapstructure:"concurrency"`
	ThumbnailConcurrency int `mapstructure:"thumbnail_concurrency"`
}

// DSN 生成 pgx 可识别的 key=value 连接串；值中的空格与引号按 libpq 规则转义。
func (d DatabaseConfig) DSN() string {
	pairs := [][2]string{
		{"host", d.Host},
		{"port", strconv.Itoa(d.Port)},
		{"user", d.User},
		{"password", d.Password},
		{"dbname", d.Name},
		{"sslmode", d.SSLMode},
	}
	parts := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		parts = append(parts, kv[0]+"="+quoteDSN(kv[1]))
	}
	return strings.Join(parts, " ")
}

func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// Load 读取配置：默认值 < 可选的 CONFIG_FILE < 环境变量。
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MustLoad 供 main 使用，配置错误直接退出。
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (cfg *Config) normalize() {
	cfg.API.AllowedOrigins = splitList(cfg.API.AllowedOrigins)
	cfg.API.AssetMIMEWhitelist = splitList(cfg.API.AssetMIMEWhitelist)
	cfg.Render.Engine = strings.ToLower(strings.TrimSpace(cfg.Render.Engine))
	if cfg.MinIO.PublicEndpoint == "" {
		scheme := "http"
		if cfg.MinIO.UseSSL {
			scheme = "https"
		}
		cfg.MinIO.PublicEndpoint = scheme + "://" + cfg.MinIO.Endpoint
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	// 为空时跳过病毒扫描。
	v.SetDefault("api.clamd_addr", "")
	v.SetDefault("api.max_resumes", 20)
	v.SetDefault("api.preview_max_width", 794)
	v.SetDefault("api.asset_max_bytes", 5*1024*1024)
	v.SetDefault("api.asset_mime_whitelist", []string{"image/png", "image/jpeg", "image/webp"})
	v.SetDefault("api.max_assets_per_user", 50)
	v.SetDefault("api.max_uploads_per_day", 30)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "resumestudio")
	v.SetDefault("database.user", "resumestudio")
	v.SetDefault("database.password", "resumestudio")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "resumes")
	v.SetDefault("minio.region", "us-east-1")
	v.SetDefault("minio.bucket_lookup", "auto")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.login_rate_limit_per_hour", 10)
	v.SetDefault("auth.login_lock_threshold", 5)
	v.SetDefault("auth.login_lock_ttl", 15*time.Minute)
	v.SetDefault("render.engine", "rod")
	v.SetDefault("render.prepare_timeout", 30*time.Second)
	v.SetDefault("render.capture_timeout", 60*time.Second)
	v.SetDefault("render.idle_timeout", 2*time.Second)
	v.SetDefault("render.default_quality", "medium")
	v.SetDefault("render.web_fonts", true)
	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.thumbnail_concurrency", 2)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                       "API_PORT",
		"api.internal_secret":            "INTERNAL_API_SECRET",
		"api.clamd_addr":                 "CLAMD_ADDR",
		"api.allowed_origins":            "WS_ALLOWED_ORIGINS",
		"api.max_resumes":                "MAX_RESUMES_PER_USER",
		"api.preview_max_width":          "PREVIEW_MAX_WIDTH",
		"api.asset_max_bytes":            "ASSET_MAX_BYTES",
		"api.asset_mime_whitelist":       "ASSET_MIME_WHITELIST",
		"api.max_assets_per_user":        "MAX_ASSETS_PER_USER",
		"api.max_uploads_per_day":        "MAX_UPLOADS_PER_DAY",
		"database.host":                  "DATABASE_HOST",
		"database.port":                  "DATABASE_PORT",
		"database.name":                  "POSTGRES_DB",
		"database.user":                  "POSTGRES_USER",
		"database.password":              "POSTGRES_PASSWORD",
		"database.sslmode":               "DATABASE_SSLMODE",
		"database.max_open_conns":        "DATABASE_MAX_OPEN_CONNS",
		"database.max_idle_conns":        "DATABASE_MAX_IDLE_CONNS",
		"database.conn_max_lifetime":     "DATABASE_CONN_MAX_LIFETIME",
		"redis.host":                     "REDIS_HOST",
		"redis.port":                     "REDIS_PORT",
		"minio.endpoint":                 "MINIO_ENDPOINT",
		"minio.public_endpoint":          "MINIO_PUBLIC_ENDPOINT",
		"minio.access_key_id":            "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":        "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":                  "MINIO_USE_SSL",
		"minio.bucket":                   "MINIO_BUCKET",
		"minio.region":                   "MINIO_REGION",
		"minio.bucket_lookup":            "MINIO_BUCKET_LOOKUP",
		"minio.auto_create_bucket":       "MINIO_AUTO_CREATE_BUCKET",
		"auth.private_key_path":          "JWT_PRIVATE_KEY_PATH",
		"auth.public_key_path":           "JWT_PUBLIC_KEY_PATH",
		"auth.access_token_ttl":          "JWT_ACCESS_TOKEN_TTL",
		"auth.refresh_token_ttl":         "JWT_REFRESH_TOKEN_TTL",
		"auth.login_rate_limit_per_hour": "LOGIN_RATE_LIMIT_PER_HOUR",
		"auth.login_lock_threshold":      "LOGIN_LOCK_THRESHOLD",
		"auth.login_lock_ttl":            "LOGIN_LOCK_TTL",
		"auth.cookie_domain":             "COOKIE_DOMAIN",
		"render.engine":                  "RENDER_ENGINE",
		"render.chrome_path":             "CHROME_PATH",
		"render.prepare_timeout":         "RENDER_PREPARE_TIMEOUT",
		"render.capture_timeout":         "RENDER_CAPTURE_TIMEOUT",
		"render.idle_timeout":            "RENDER_IDLE_TIMEOUT",
		"render.default_quality":         "EXPORT_DEFAULT_QUALITY",
		"render.web_fonts":               "RENDER_WEB_FONTS",
		"worker.concurrency":             "WORKER_CONCURRENCY",
		"worker.thumbnail_concurrency":   "THUMBNAIL_CONCURRENCY",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	return nil
}

// splitList 兼容环境变量里以逗号分隔的列表。
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// validate 一次性报告所有问题，方便部署时对照修改。
func (cfg *Config) validate() error {
	var errs []error
	required := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}
	positive := func(name string, value int64) {
		if value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}

	positive("API_PORT", int64(cfg.API.Port))
	required("DATABASE_HOST", cfg.Database.Host)
	positive("DATABASE_PORT", int64(cfg.Database.Port))
	required("POSTGRES_DB", cfg.Database.Name)
	required("POSTGRES_USER", cfg.Database.User)
	required("POSTGRES_PASSWORD", cfg.Database.Password)
	required("DATABASE_SSLMODE", cfg.Database.SSLMode)
	required("REDIS_HOST", cfg.Redis.Host)
	positive("REDIS_PORT", int64(cfg.Redis.Port))
	required("MINIO_ENDPOINT", cfg.MinIO.Endpoint)
	required("MINIO_ACCESS_KEY_ID", cfg.MinIO.AccessKeyID)
	required("MINIO_SECRET_ACCESS_KEY", cfg.MinIO.SecretAccessKey)
	required("MINIO_BUCKET", cfg.MinIO.Bucket)
	positive("RENDER_PREPARE_TIMEOUT", int64(cfg.Render.PrepareTimeout))
	positive("RENDER_CAPTURE_TIMEOUT", int64(cfg.Render.CaptureTimeout))
	positive("WORKER_CONCURRENCY", int64(cfg.Worker.Concurrency))
	positive("THUMBNAIL_CONCURRENCY", int64(cfg.Worker.ThumbnailConcurrency))

	if cfg.Render.Engine != "rod" && cfg.Render.Engine != "chromedp" {
		errs = append(errs, fmt.Errorf("RENDER_ENGINE %q is not supported (rod or chromedp)", cfg.Render.Engine))
	}
	if cfg.API.PreviewMaxWidth <= 0 {
		errs = append(errs, errors.New("PREVIEW_MAX_WIDTH must be positive"))
	}
	return errors.Join(errs...)
}
