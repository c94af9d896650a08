package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sekolahdigital/lms-backend/internal/config"
	"github.com/sekolahdigital/lms-backend/internal/handler"
	"github.com/sekolahdigital/lms-backend/internal/middleware"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/response"
	"github.com/sekolahdigital/lms-backend/internal/security"
	"github.com/sekolahdigital/lms-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Attendance   *handler.AttendanceHandler
	Subject      *handler.SubjectHandler
	Announcement *handler.AnnouncementHandler
	Assignment   *handler.AssignmentHandler
	Analytics    *handler.AnalyticsHandler
	AdminUser    *handler.AdminUserHandler
	AdminClass   *handler.AdminClassHandler
	Report       *handler.ReportHandler
	Export       *handler.ExportHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	counters security.CounterStore,
	handlers *Handlers,
	cfg *config.Config,
	audit zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "demo": cfg.DemoMode})
	})

	teacherOrAdmin := middleware.RequireAnyRole(model.RoleTeacher, model.RoleAdmin)

	// Public: only login, still screened and rate limited.
	public := router.Group("/api")
	public.Use(
		middleware.RateLimit(cfg, counters),
		middleware.SecurityFilter(audit),
	)
	{
		public.POST("/login", handlers.Auth.Login)
	}

	// Authenticated routes for any role.
	api := router.Group("/api")
	api.Use(
		middleware.RateLimit(cfg, counters),
		middleware.SecurityFilter(audit),
		middleware.RequireJWT(cfg, authService, counters),
	)
	{
		api.POST("/logout", handlers.Auth.Logout)
		api.GET("/user", handlers.Auth.Me)

		api.POST("/attendance/checkin", handlers.Attendance.Checkin)
		api.GET("/attendance/my", handlers.Attendance.My)

		api.GET("/subjects", handlers.Subject.List)
		api.POST("/subjects", teacherOrAdmin, handlers.Subject.Create)

		api.GET("/announcements", handlers.Announcement.List)
		api.POST("/announcements", teacherOrAdmin, handlers.Announcement.Create)

		api.GET("/classes/:id/assignments", handlers.Assignment.ListByClass)
		api.POST("/classes/:id/assignments",
			middleware.RequireRole(model.RoleTeacher),
			handlers.Assignment.Create,
		)
		api.POST("/assignments/:id/submit",
			middleware.RequireRole(model.RoleStudent),
			handlers.Assignment.Submit,
		)
		api.POST("/submissions/:id/grade",
			middleware.RequireRole(model.RoleTeacher),
			handlers.Assignment.Grade,
		)

		api.GET("/analytics/student/:id/scores", handlers.Analytics.StudentScores)
		api.GET("/analytics/class/:id/attendance", handlers.Analytics.ClassAttendance)

		// Admin-gated mutations living under the shared resource paths.
		api.PUT("/subjects/:id",
			middleware.RequireRole(model.RoleAdmin),
			handlers.Subject.Update,
		)
		api.DELETE("/subjects/:id",
			middleware.RequireRole(model.RoleAdmin),
			handlers.Subject.Delete,
		)
		api.PUT("/announcements/:id",
			middleware.RequireRole(model.RoleAdmin),
			handlers.Announcement.Update,
		)
		api.DELETE("/announcements/:id",
			middleware.RequireRole(model.RoleAdmin),
			handlers.Announcement.Delete,
		)
	}

	// Admin group.
	adminAPI := router.Group("/api/admin")
	adminAPI.Use(
		middleware.RateLimit(cfg, counters),
		middleware.SecurityFilter(audit),
		middleware.RequireJWT(cfg, authService, counters),
		middleware.RequireRole(model.RoleAdmin),
	)
	{
		adminAPI.GET("/users", handlers.AdminUser.List)
		adminAPI.POST("/users", handlers.AdminUser.Create)
		adminAPI.PUT("/users/:id", handlers.AdminUser.Update)
		adminAPI.DELETE("/users/:id", handlers.AdminUser.Delete)

		adminAPI.GET("/classes", handlers.AdminClass.List)
		adminAPI.POST("/classes", handlers.AdminClass.Create)
		adminAPI.PUT("/classes/:id", handlers.AdminClass.Update)
		adminAPI.DELETE("/classes/:id", handlers.AdminClass.Delete)
		adminAPI.POST("/classes/:id/members", handlers.AdminClass.Enroll)

		adminAPI.GET("/reports/attendance", handlers.Report.Attendance)
		adminAPI.GET("/reports/grades", handlers.Report.Grades)
		adminAPI.GET("/dashboard/stats", handlers.Report.DashboardStats)

		adminAPI.GET("/export/users", handlers.Export.Users)
		adminAPI.GET("/export/classes", handlers.Export.Classes)
		adminAPI.GET("/export/attendance", handlers.Export.Attendance)
		adminAPI.GET("/export/grades", handlers.Export.Grades)
	}

	return router
}
