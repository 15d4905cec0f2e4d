package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"resumeStudio/internal/config"
	"resumeStudio/internal/database"
	"resumeStudio/internal/export"
	"resumeStudio/internal/metrics"
	"resumeStudio/internal/raster"
	"resumeStudio/internal/render"
	"resumeStudio/internal/storage"
	"resumeStudio/internal/tasks"
	"resumeStudio/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if os.Getenv("LOG_FORMAT") == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("worker exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		return fmt.Errorf("init storage client: %w", err)
	}
	logger.Info("storage client ready", slog.String("bucket", cfg.MinIO.Bucket))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	rasterizer, err := raster.New(cfg.Render.Engine, raster.Options{
		ChromePath:     cfg.Render.ChromePath,
		PrepareTimeout: cfg.Render.PrepareTimeout,
		CaptureTimeout: cfg.Render.CaptureTimeout,
		IdleTimeout:    cfg.Render.IdleTimeout,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	// worker 不知道任务会用到哪个模板，开启网络字体时引用全部目录字体。
	var stylesheets []string
	if cfg.Render.WebFonts {
		stylesheets = render.WebFontStylesheets()
	}
	exporter := export.NewExporter(rasterizer, logger, stylesheets...)

	exportHandler := worker.NewExportTaskHandler(db, storageClient, exporter, worker.NewRedisNotifier(redisClient), logger)
	thumbnailHandler := worker.NewThumbnailTaskHandler(db, storageClient, exporter, logger, cfg.Worker.ThumbnailConcurrency)

	server := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()}, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
	})

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypeResumeExport, exportHandler)
	mux.Handle(tasks.TypeTemplateThumbnails, thumbnailHandler)

	logger.Info("worker service started",
		slog.String("redis_addr", cfg.Redis.Addr()),
		slog.String("engine", cfg.Render.Engine),
		slog.Int("concurrency", cfg.Worker.Concurrency),
	)
	// Run 阻塞直到收到 SIGTERM/SIGINT。
	return server.Run(mux)
}
