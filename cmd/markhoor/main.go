package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/markhoor-institute/markhoor-api/internal/app"
	"github.com/markhoor-institute/markhoor-api/internal/auth"
	"github.com/markhoor-institute/markhoor-api/internal/books"
	"github.com/markhoor-institute/markhoor-api/internal/contact"
	"github.com/markhoor-institute/markhoor-api/internal/courses"
	"github.com/markhoor-institute/markhoor-api/internal/observability"
	"github.com/markhoor-institute/markhoor-api/internal/platform/cache"
	"github.com/markhoor-institute/markhoor-api/internal/platform/db"
	"github.com/markhoor-institute/markhoor-api/internal/students"
	"github.com/markhoor-institute/markhoor-api/internal/uploads"
	"github.com/markhoor-institute/markhoor-api/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, course cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	storage, err := uploads.NewStorage(cfg.UploadDir, cfg.UploadMaxBytes)
	if err != nil {
		logger.Error("init upload storage", slog.Any("error", err))
		os.Exit(1)
	}

	userStore := auth.NewUserStore(pool)
	adminStore := auth.NewAdminStore(pool)
	resolver := auth.NewResolver(userStore, adminStore, auth.NewHasher())
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(resolver, tokens)
	authHandler := auth.NewHandler(logger, authService)

	authMW := auth.Middleware{Service: authService, Logger: logger}
	requireAdmin := func(next http.Handler) http.Handler {
		return authMW.RequireAuth(authMW.RequireAdmin(next))
	}

	coursesRepo := courses.NewRepository(pool)
	coursesCache := courses.NewCache(redisClient, 10*time.Minute)
	coursesService := courses.NewService(coursesRepo, coursesCache, logger)
	coursesHandler := courses.NewHandler(logger, coursesService, storage, requireAdmin)

	booksRepo := books.NewRepository(pool)
	booksService := books.NewService(booksRepo)
	booksHandler := books.NewHandler(logger, booksService, storage, requireAdmin)

	studentsRepo := students.NewRepository(pool)
	studentsService := students.NewService(studentsRepo)
	studentsHandler := students.NewHandler(logger, studentsService, storage, requireAdmin)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	contactRepo := contact.NewRepository(pool)
	contactService := contact.NewService(logger, contactRepo, jobsClient)
	contactHandler := contact.NewHandler(logger, contactService, storage, requireAdmin)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthHandler:     authHandler,
		CoursesHandler:  coursesHandler,
		BooksHandler:    booksHandler,
		StudentsHandler: studentsHandler,
		ContactHandler:  contactHandler,
		JobHandler:      jobHandler,
		Uploads:         storage,
		RequireAdmin:    requireAdmin,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
