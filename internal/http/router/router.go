// Package router assembles the Gin engine from the registered modules.
package router

import (
	"net/http"
	"strings"

	apphttp "leadsync_backend/internal/http"
	"leadsync_backend/platform/config"
	"leadsync_backend/platform/httpkit"
	"leadsync_backend/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Config combines the config interfaces needed by the router.
type Config interface {
	config.HTTPConfig
	config.AuthConfig
}

// New builds the engine, mounts shared middleware and registers every module.
func New(cfg Config, env string, log *logger.Logger, health apphttp.HealthChecker, modules []apphttp.Module) *gin.Engine {
	if !strings.EqualFold(env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(cfg))

	limiter := httpkit.NewIPRateLimiter(rate.Limit(20), 40, log)
	engine.Use(limiter.RateLimit())

	engine.GET("/api/health", func(c *gin.Context) {
		if health != nil {
			if err := health.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	protected := engine.Group("/api/v1")
	protected.Use(httpkit.APIKeyAuth(cfg, log))

	ctx := &apphttp.RouterContext{
		Engine:    engine,
		V1:        v1,
		Protected: protected,
	}

	for _, module := range modules {
		module.RegisterRoutes(ctx)
		log.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(cfg Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if cfg.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.GetCORSOrigins()
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, httpkit.HeaderAPIKey, httpkit.HeaderRequestID)
	return cors.New(corsConfig)
}
