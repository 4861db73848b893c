package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/app"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/auth"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/config"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/controller"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/notify"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/repository"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/service"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const tokenTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting training hub",
		zap.String("environment", cfg.Environment),
		zap.String("listen_addr", cfg.ListenAddr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	_ = migrator.Close()

	hub := ws.NewHub(logger)
	go hub.Run(ctx)
	defer hub.Stop()

	if cfg.TelegramEnabled() {
		sink, err := notify.NewTelegramSink(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram sink", zap.Error(err))
		}
		hub.Register(sink)
		logger.Info("Telegram event sink enabled", zap.String("chat_id", cfg.TelegramChatID))
	}

	userRepo := repository.NewUserRepository(pool)
	logRepo := repository.NewPasswordLogRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	userService := service.NewUserService(
		pool, userRepo, logRepo, assignmentRepo, sessionRepo, attendanceRepo,
		cfg.TempPasswordLength, hub, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, userRepo, hub, logger)
	sessionService := service.NewSessionService(pool, sessionRepo, userRepo, attendanceRepo, hub, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, sessionRepo, userRepo, hub, logger)
	progressService := service.NewProgressService(sessionRepo, attendanceRepo, assignmentRepo, userRepo, logger)

	tokens := auth.NewTokenManager(cfg.SecretKey, tokenTTL)
	wsServer := ws.NewServer(hub, tokens, logger)

	ctrl := controller.New(
		userService, assignmentService, sessionService, attendanceService,
		progressService, tokens, wsServer, logger)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           ctrl.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
