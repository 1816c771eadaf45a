package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"storyhub/internal/config"
	"storyhub/internal/database"
	"storyhub/internal/handler"
	"storyhub/internal/importer"
	"storyhub/internal/ingestion/gutendex"
	"storyhub/internal/ingestion/otruyen"
	"storyhub/internal/progress"
	"storyhub/internal/repository"
	"storyhub/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Redis keeps the bounded recent-reads cache; fall back to the in-process
	// ring when it is unreachable so reading still works.
	var cache progress.Cache
	redisCache, err := progress.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, progress.DefaultCacheCapacity, cfg.ProgressTTL)
	if err != nil {
		logger.Warn("redis_unavailable_using_memory_cache", "error", err)
		cache = progress.NewMemoryCache(progress.DefaultCacheCapacity)
	} else {
		defer redisCache.Close()
		cache = redisCache
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Core components
	progressStore := progress.NewStore(cache, progressRepo, chapterRepo, logger)

	comicClient := otruyen.NewClient(cfg.OTruyenAPIURL)
	bookClient := gutendex.NewClient(cfg.GutendexAPIURL)

	imp := importer.New(storyRepo, chapterRepo, progressStore, logger)
	imp.RegisterCatalog(importer.SourceOTruyen, importer.NewOTruyenCatalog(comicClient))
	imp.SetBatchSize(cfg.ImportBatchSize)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	storyService := service.NewStoryService(storyRepo, chapterRepo)
	commentService := service.NewCommentService(commentRepo, replyRepo, storyRepo)
	reportService := service.NewReportService(reportRepo, commentRepo, replyRepo, userRepo, notificationRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo)

	router := handler.NewRouter(handler.Handlers{
		Auth:          handler.NewAuthHandler(authService, int64(cfg.JWTExpiry.Seconds())),
		Story:         handler.NewStoryHandler(storyService),
		Progress:      handler.NewProgressHandler(progressStore, storyService),
		Import:        handler.NewImportHandler(imp, bookClient, storyService, notificationService),
		Catalog:       handler.NewCatalogHandler(comicClient),
		Comment:       handler.NewCommentHandler(commentService),
		Report:        handler.NewReportHandler(reportService),
		Notification:  handler.NewNotificationHandler(notificationService),
		AuthService:   authService,
		AllowedOrigin: cfg.CORSOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server_starting", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
