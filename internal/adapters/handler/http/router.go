package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/kanso-habit-engine/docs"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// SaveStatus exposes the background saver's progress.
type SaveStatus interface {
	Saves() uint64
	LastError() error
}

type RouterDependencies struct {
	AuthHandler        *AuthHandler
	HabitHandler       *HabitHandler
	StatsHandler       *StatsHandler
	PreferencesHandler *PreferencesHandler

	// TokenService protects the API when set. Nil leaves it open.
	TokenService *services.TokenService

	Redis           *redis.Client
	RateLimit       int
	RateLimitWindow time.Duration

	HealthChecks map[string]HealthCheck
	SaveStatus   SaveStatus
	StartTime    time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", PersistenceWarningHeader)
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if deps.Redis != nil && deps.RateLimit > 0 {
		window := deps.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, window))
	}

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status": "ok",
			"uptime": time.Since(deps.StartTime).String(),
		}
		statusCode := http.StatusOK

		for name, check := range deps.HealthChecks {
			if err := check(c.Request.Context()); err != nil {
				body[name] = "unreachable"
				statusCode = http.StatusServiceUnavailable
				continue
			}
			body[name] = "connected"
		}
		if deps.SaveStatus != nil {
			body["saves"] = strconv.FormatUint(deps.SaveStatus.Saves(), 10)
			if err := deps.SaveStatus.LastError(); err != nil {
				body["lastSaveError"] = err.Error()
				statusCode = http.StatusServiceUnavailable
			}
		}
		if statusCode != http.StatusOK {
			body["status"] = "degraded"
		}

		c.JSON(statusCode, body)
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(apiV1)
	}

	protected := apiV1.Group("")
	if deps.TokenService != nil {
		protected.Use(middleware.AuthMiddleware(deps.TokenService))
	}
	{
		deps.HabitHandler.RegisterRoutes(protected)
		deps.StatsHandler.RegisterRoutes(protected)
		deps.PreferencesHandler.RegisterRoutes(protected)
	}

	return router
}
