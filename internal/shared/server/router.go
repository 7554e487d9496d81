package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resume-profile/internal/auth"
	"resume-profile/internal/preview"
	"resume-profile/internal/profile"
	"resume-profile/internal/services/health"
	"resume-profile/internal/shared/config"
	"resume-profile/internal/shared/metrics"
	"resume-profile/internal/shared/server/middleware"
	"resume-profile/internal/shared/server/respond"
	"resume-profile/internal/uploads"
	"resume-profile/internal/users"
)

// RouterDeps carries the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config         config.Config
	Health         *health.Service
	PreviewHandler *preview.Handler
	ProfileHandler *profile.Handler
	UploadHandler  *uploads.Handler
	UserHandler    *users.Handler
	GoogleAuth     *googleauth.GoogleService
	RateLimiter    *middleware.RateLimiter
}

var rateLimitRules = map[string]middleware.RateLimitRule{
	middleware.GroupDefault: {Rate: 10, Burst: 40},
	middleware.GroupPreview: {Rate: 0.2, Burst: 5},
	middleware.GroupUpload:  {Rate: 0.1, Burst: 3},
}

var rateLimitRoutes = map[string]string{
	"GET /preview":               middleware.GroupPreview,
	"GET /api/v1/preview/stream": middleware.GroupPreview,
	"POST /resume":               middleware.GroupUpload,
	"POST /api/v1/resume":        middleware.GroupUpload,
	"GET /u/:username/pdf":       middleware.GroupPreview,
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    rateLimitRules,
			GroupFor: middleware.GroupByRoute(rateLimitRoutes),
			Limiter:  deps.RateLimiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/preview")
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterPages(r)
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.PreviewHandler != nil {
		deps.PreviewHandler.RegisterRoutes(r)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(r)
	}

	private := api.Group("", middleware.RequireSession())
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(private)
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.RegisterPages(r)
		deps.UploadHandler.RegisterRoutes(private)
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
