package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"magang-intel/internal/favorites"
	"magang-intel/internal/services/health"
	"magang-intel/internal/shared/config"
	"magang-intel/internal/shared/metrics"
	"magang-intel/internal/shared/server/middleware"
	"magang-intel/internal/shared/server/respond"
	"magang-intel/internal/statuscheck"
	"magang-intel/internal/vacancies"
)

const (
	rateGroupRead   = "READ"
	rateGroupWrite  = "WRITE"
	rateGroupStatus = "STATUS"
)

// RouterDeps are the handlers mounted under /api/v1. Nil handlers are skipped.
type RouterDeps struct {
	Config           config.Config
	Health           *health.Service
	VacancyHandler   *vacancies.Handler
	FavoritesHandler *favorites.Handler
	StatusHandler    *statuscheck.Handler
	RateLimiter      *middleware.RateLimiter
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
		middleware.ClientID(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        rateRules(deps.Config),
			DefaultGroup: rateGroupRead,
			GroupFor:     rateGroupFor,
			Limiter:      deps.RateLimiter,
		}),
	)

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
	api.GET("/metrics", metrics.Handler())

	if deps.VacancyHandler != nil {
		deps.VacancyHandler.RegisterRoutes(api)
	}
	if deps.FavoritesHandler != nil {
		deps.FavoritesHandler.RegisterRoutes(api)
	}
	if deps.StatusHandler != nil {
		deps.StatusHandler.RegisterRoutes(api)
	}

	return r
}

func rateGroupFor(c *gin.Context) string {
	if strings.HasSuffix(c.FullPath(), "/status-check") {
		return rateGroupStatus
	}
	if c.Request.Method != http.MethodGet {
		return rateGroupWrite
	}
	return rateGroupRead
}

func rateRules(cfg config.Config) map[string]middleware.RateLimitRule {
	perMin := cfg.StatusRatePerMin
	if perMin <= 0 {
		perMin = 12
	}
	burst := perMin / 4
	if burst < 1 {
		burst = 1
	}
	return map[string]middleware.RateLimitRule{
		rateGroupRead:   {Rate: 20, Burst: 60},
		rateGroupWrite:  {Rate: 5, Burst: 20},
		rateGroupStatus: {Rate: float64(perMin) / 60.0, Burst: burst},
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
