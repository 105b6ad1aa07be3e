// Package server assembles the HTTP surface of the storefront.
package server

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Routes groups the handlers by the middleware they run behind.
type Routes struct {
	Catalog []RouteRegistrar // public, no session
	Session []RouteRegistrar // needs a cart owner
	Auth    RouteRegistrar   // rate limited, no session
}

type Deps struct {
	Config  *config.Config
	Logger  logger.ZapLogger
	Tokens  *auth.TokenParser
	Limiter cache.Counter
}

func NewRouter(d Deps, routes Routes) *gin.Engine {
	if d.Config.Server.AppEnv != "development" && d.Config.Server.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	for _, h := range routes.Catalog {
		h.RegisterRoutes(api)
	}

	session := api.Group("")
	session.Use(middleware.Identity(d.Tokens, d.Config.Server.SecureCookies))
	for _, h := range routes.Session {
		h.RegisterRoutes(session)
	}

	if routes.Auth != nil {
		authGroup := api.Group("")
		if d.Limiter != nil && d.Config.RateLimit.Requests > 0 {
			authGroup.Use(middleware.RateLimiter(d.Limiter, d.Config.RateLimit.Requests, d.Config.RateLimit.Window, d.Logger))
		}
		routes.Auth.RegisterRoutes(authGroup)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return r
}
