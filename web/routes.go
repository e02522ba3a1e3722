package web

import (
	"github.com/gin-gonic/gin"

	"github.com/namiksejdovic1-tech/price-master-bih/config"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	router.GET("/healthz", handler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/products", handler.ListProducts)
		api.POST("/products", handler.AddProduct)
		api.POST("/products/:id/refresh", handler.RefreshProduct)
		api.DELETE("/products/:id", handler.DeleteProduct)

		api.GET("/stats", handler.GetStats)
		api.GET("/suggestions", handler.GetSuggestions)
		api.GET("/export", handler.ExportCSV)
	}

	return router
}
