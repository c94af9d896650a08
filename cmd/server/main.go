package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/sekolahdigital/lms-backend/internal/config"
	"github.com/sekolahdigital/lms-backend/internal/database"
	"github.com/sekolahdigital/lms-backend/internal/handler"
	"github.com/sekolahdigital/lms-backend/internal/logger"
	"github.com/sekolahdigital/lms-backend/internal/repository"
	"github.com/sekolahdigital/lms-backend/internal/router"
	"github.com/sekolahdigital/lms-backend/internal/security"
	"github.com/sekolahdigital/lms-backend/internal/service"
	"github.com/sekolahdigital/lms-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting LMS Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	audit := logger.Audit(log)
	counters := security.NewRedisCounterStore(rdb)
	denylist := service.NewRedisDenylist(rdb)

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, counters, denylist, audit)
	userService := service.NewUserService(userRepo, authService, log)
	classService := service.NewClassService(classRepo)
	subjectService := service.NewSubjectService(subjectRepo, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, log)
	announcementService := service.NewAnnouncementService(announcementRepo)
	reportService := service.NewReportService(reportRepo, submissionRepo, userRepo)
	exportService := service.NewExportService(userRepo, classRepo, attendanceRepo, reportRepo)
	mediaService := service.NewMediaService(cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService),
		Attendance:   handler.NewAttendanceHandler(attendanceService),
		Subject:      handler.NewSubjectHandler(subjectService),
		Announcement: handler.NewAnnouncementHandler(announcementService),
		Assignment:   handler.NewAssignmentHandler(assignmentService, mediaService),
		Analytics:    handler.NewAnalyticsHandler(reportService),
		AdminUser:    handler.NewAdminUserHandler(userService),
		AdminClass:   handler.NewAdminClassHandler(classService),
		Report:       handler.NewReportHandler(reportService),
		Export:       handler.NewExportHandler(exportService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, counters, handlers, cfg, audit)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
