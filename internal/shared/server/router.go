package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/crops"
	"resume-builder/internal/export"
	"resume-builder/internal/imports"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/suggestions"
	"resume-builder/internal/templates"
)

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config            config.Config
	Health            *health.Service
	CropHandler       *crops.Handler
	ResumeHandler     *resumes.Handler
	TemplateHandler   *templates.Handler
	ImportHandler     *imports.Handler
	SuggestionHandler *suggestions.Handler
	ExportHandler     *export.Handler
	RateLimiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	if deps.TemplateHandler != nil {
		deps.TemplateHandler.RegisterRoutes(api)
	}

	rl := deps.Config.RateLimit
	scoped := api.Group("")
	scoped.Use(
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.GroupDefault: {Rate: rl.DefaultRate, Burst: rl.DefaultBurst},
				middleware.GroupPointer: {Rate: rl.PointerRate, Burst: rl.PointerBurst},
			},
			GroupFor: func(c *gin.Context) string {
				if crops.IsPointerRoute(c) {
					return middleware.GroupPointer
				}
				return middleware.GroupDefault
			},
			Limiter: deps.RateLimiter,
		}),
	)

	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(scoped)
	}
	if deps.CropHandler != nil {
		deps.CropHandler.RegisterRoutes(scoped)
	}
	if deps.ImportHandler != nil {
		deps.ImportHandler.RegisterRoutes(scoped)
	}
	if deps.SuggestionHandler != nil {
		deps.SuggestionHandler.RegisterRoutes(scoped)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(scoped)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
