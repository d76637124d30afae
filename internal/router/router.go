// Package router assembles the gin engine: ambient middleware, the announcement
// routes and the observability endpoints.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/announcement-api/internal/handler"
	"github.com/noah-isme/announcement-api/internal/middleware"
	"github.com/noah-isme/announcement-api/internal/service"
	"github.com/noah-isme/announcement-api/pkg/config"
	appErrors "github.com/noah-isme/announcement-api/pkg/errors"
	"github.com/noah-isme/announcement-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/announcement-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/announcement-api/pkg/middleware/requestid"
	"github.com/noah-isme/announcement-api/pkg/response"
)

// Dependencies are the constructed collaborators the engine routes to.
type Dependencies struct {
	Announcements *handler.AnnouncementHandler
	Observability *handler.MetricsHandler
	Metrics       *service.MetricsService
	Logger        *zap.Logger
}

// New builds the engine for cfg.
func New(cfg *config.Config, deps Dependencies) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	if deps.Logger != nil {
		r.Use(logger.GinMiddleware(deps.Logger))
	}
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins, response.HeaderTotalCount, response.HeaderLink,
		"X-"+cfg.AppName+"-alert", "X-"+cfg.AppName+"-params"))
	if cfg.Metrics.Enabled && deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, appErrors.ErrMethodNotAllowed)
	})

	if deps.Observability != nil {
		r.GET("/health", deps.Observability.Health)
		r.GET("/ready", deps.Observability.Ready)
		if cfg.Metrics.Enabled {
			r.GET("/metrics", deps.Observability.Prometheus)
		}
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	if cfg.Auth.Enabled {
		api.Use(middleware.JWT(cfg.Auth.Secret))
	}
	registerAnnouncementRoutes(api, deps.Announcements)

	return r
}

func registerAnnouncementRoutes(rg *gin.RouterGroup, h *handler.AnnouncementHandler) {
	announcements := rg.Group("/announcements")

	announcements.GET("", h.List)
	announcements.POST("", h.Create)
	announcements.PUT("", h.MethodNotAllowed)
	announcements.PATCH("", h.MethodNotAllowed)

	announcements.GET("/count", h.Count)
	announcements.GET("/get/all/active", h.Active)
	announcements.POST("/create", h.CreateStructured)
	announcements.POST("/update", h.UpdateStructured)
	announcements.POST("/delete", h.DeleteStructured)

	announcements.GET("/:id", h.Get)
	announcements.PUT("/:id", h.Update)
	announcements.PATCH("/:id", h.PartialUpdate)
	announcements.DELETE("/:id", h.Delete)
}
