package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/studiva/classwork-backend/internal/config"
	"github.com/studiva/classwork-backend/internal/handler"
	"github.com/studiva/classwork-backend/internal/middleware"
	"github.com/studiva/classwork-backend/internal/response"
	"github.com/studiva/classwork-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Profile    *handler.ProfileHandler
	Progress   *handler.ProgressHandler
	Assignment *handler.AssignmentHandler
	Submission *handler.SubmissionHandler
	File       *handler.FileHandler
	Grading    *handler.GradingHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	tokenService *service.TokenService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
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
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the student surface (120 requests per minute per IP).
	studentLimiter := middleware.NewRateLimiter(120, time.Minute)

	// ─── 1. Student Group (Session Token, Rate Limited) ────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		studentLimiter.Middleware(),
		middleware.RequireStudentSession(tokenService),
	)
	{
		studentAPI.GET("/profile", handlers.Profile.GetProfile)

		studentAPI.GET("/progress", handlers.Progress.ListProgress)
		studentAPI.PUT("/progress", handlers.Progress.UpsertProgress)
		studentAPI.DELETE("/progress/:project_id", handlers.Progress.DeleteProgress)

		studentAPI.GET("/assignments", handlers.Assignment.ListAssignments)
		studentAPI.GET("/assignments/:assignment_id", handlers.Assignment.GetAssignment)
		studentAPI.PUT("/assignments/:assignment_id/submission", handlers.Submission.UpsertDraft)

		studentAPI.POST("/submissions/:submission_id/submit", handlers.Submission.Submit)
		studentAPI.POST("/submissions/:submission_id/upload-ticket", handlers.File.CreateUploadTicket)
		studentAPI.GET("/submissions/:submission_id/files", handlers.File.ListFiles)
		studentAPI.POST("/submissions/:submission_id/files", handlers.File.AttachFile)
		studentAPI.DELETE("/files/:file_id", handlers.File.DeleteFile)
	}

	// ─── 2. Teacher Group (Session Token) ──────────────────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(middleware.RequireTeacherSession(tokenService))
	{
		teacherAPI.GET("/assignments", handlers.Assignment.ListAssignments)
		teacherAPI.GET("/assignments/:assignment_id", handlers.Assignment.GetAssignment)
		teacherAPI.GET("/assignments/:assignment_id/submissions", handlers.Grading.ListSubmissions)
		teacherAPI.POST("/submissions/:submission_id/grade", handlers.Grading.GradeSubmission)
		teacherAPI.POST("/submissions/:submission_id/request-revision", handlers.Grading.RequestRevision)
	}

	return router
}
