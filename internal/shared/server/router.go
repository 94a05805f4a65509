package server

import (
	"github.com/gin-gonic/gin"

	"jobportal/internal/accounts"
	"jobportal/internal/applications"
	googleauth "jobportal/internal/auth"
	"jobportal/internal/jobs"
	"jobportal/internal/profiles"
	"jobportal/internal/savedjobs"
	"jobportal/internal/shared/config"
	"jobportal/internal/shared/metrics"
	"jobportal/internal/shared/server/middleware"
	"jobportal/internal/shared/server/respond"
	"jobportal/internal/translate"
)

// Rate limit groups.
const (
	groupDefault = "DEFAULT"
	groupJobs    = "JOBS"
	groupUpload  = "UPLOAD"
)

// RouterDeps carries the handlers to mount. Nil handlers are skipped.
type RouterDeps struct {
	Config       config.Config
	Accounts     *accounts.Handler
	GoogleAuth   *googleauth.GoogleService
	Profiles     *profiles.Handler
	Jobs         *jobs.Handler
	SavedJobs    *savedjobs.Handler
	Translate    *translate.Handler
	Applications *applications.Handler
	Limiter      *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", health)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        RateLimitRules(deps.Config.RateLimitRPM, deps.Config.RateLimitBurst),
			DefaultGroup: groupDefault,
			GroupFor:     rateLimitGroup,
			Limiter:      deps.Limiter,
		}),
	)
	api.GET("/health", health)
	registerSessionRoutes(api)

	if deps.Accounts != nil {
		deps.Accounts.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.Profiles != nil {
		deps.Profiles.RegisterRoutes(api)
	}
	if deps.Jobs != nil {
		deps.Jobs.RegisterRoutes(api)
	}
	if deps.SavedJobs != nil {
		deps.SavedJobs.RegisterRoutes(api)
	}
	if deps.Translate != nil {
		deps.Translate.RegisterRoutes(api)
	}
	if deps.Applications != nil {
		deps.Applications.RegisterRoutes(api)
	}

	return r
}

func health(c *gin.Context) {
	respond.OK(c, gin.H{"ok": true})
}

// RateLimitRules derives per-group buckets from the per-minute budget.
// Job searches fan out to three upstream APIs and uploads run extraction,
// so both get a smaller share.
func RateLimitRules(rpm, burst int) map[string]middleware.RateLimitRule {
	if rpm <= 0 || burst <= 0 {
		return nil
	}
	perSecond := float64(rpm) / 60
	return map[string]middleware.RateLimitRule{
		groupDefault: {Rate: perSecond, Burst: burst},
		groupJobs:    {Rate: perSecond / 6, Burst: max(1, burst/3)},
		groupUpload:  {Rate: perSecond / 12, Burst: max(1, burst/6)},
	}
}

func rateLimitGroup(c *gin.Context) string {
	switch c.Request.Method + " " + c.FullPath() {
	case "POST /api/v1/jobs", "GET /api/v1/jobs/sources/:source":
		return groupJobs
	case "POST /api/v1/resume", "POST /api/v1/applications":
		return groupUpload
	default:
		return groupDefault
	}
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
