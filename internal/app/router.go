package app

import (
	"github.com/gin-gonic/gin"
	"github.com/markvl91/teammates/docs"
	"github.com/markvl91/teammates/internal/config"
	"github.com/markvl91/teammates/internal/middleware"
	"github.com/markvl91/teammates/pkg/monitoring"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	public := router.Group("/api")
	{
		public.POST("/auth/login", c.auth.Login)
	}

	instructor := router.Group("/api/instructor")
	instructor.Use(middleware.AuthMiddleware(cfg))
	{
		sessions := instructor.Group("/courses/:courseId/sessions/:fsname")
		{
			sessions.GET("/results", c.results.GetResults)
			sessions.GET("/results/csv", c.results.GetResultsCSV)
			sessions.GET("/results/download", c.results.DownloadResults)
		}
	}
}
