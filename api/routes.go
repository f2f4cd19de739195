package api

import (
	"sharebox/config"
	"sharebox/store"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware
)

// RegisterRoutes wires every endpoint of the catalog view onto router.
func RegisterRoutes(router *gin.Engine, catalog *store.Store, hub *Hub, metrics *Metrics, cfg *config.Config) {
	router.Use(metrics.Middleware())

	// Operational routes are not rate limited.
	router.GET("/metrics", metrics.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/events", func(c *gin.Context) {
		EventsHandler(c, catalog, hub)
	})

	catalogGroup := router.Group("")
	catalogGroup.Use(RateLimit(cfg.RateLimit))
	{
		productGroup := catalogGroup.Group("/products")
		{
			// GET /products
			productGroup.GET("", func(c *gin.Context) {
				ListProductsHandler(c, catalog, cfg)
			})
			// POST /products
			productGroup.POST("", func(c *gin.Context) {
				CreateProductHandler(c, catalog, hub, cfg)
			})
			// POST /products/reorder
			productGroup.POST("/reorder", func(c *gin.Context) {
				ReorderProductsHandler(c, catalog, cfg)
			})
			// GET /products/{id}
			productGroup.GET("/:id", func(c *gin.Context) {
				GetProductHandler(c, catalog, cfg)
			})
			// PATCH /products/{id}
			productGroup.PATCH("/:id", func(c *gin.Context) {
				UpdateProductHandler(c, catalog, cfg)
			})
			// POST /products/{id}/like
			productGroup.POST("/:id/like", func(c *gin.Context) {
				LikeProductHandler(c, catalog, cfg)
			})
			// POST /products/{id}/comments
			productGroup.POST("/:id/comments", func(c *gin.Context) {
				AddCommentHandler(c, catalog, cfg)
			})
			// POST /products/{id}/delete-request
			productGroup.POST("/:id/delete-request", func(c *gin.Context) {
				RequestDeleteHandler(c, catalog, cfg)
			})
		}

		deletionGroup := catalogGroup.Group("/deletions")
		{
			deletionGroup.POST("/:token/confirm", func(c *gin.Context) {
				ConfirmDeleteHandler(c, catalog, cfg)
			})
			deletionGroup.DELETE("/:token", func(c *gin.Context) {
				CancelDeleteHandler(c, catalog, cfg)
			})
		}

		filterGroup := catalogGroup.Group("/filters")
		{
			filterGroup.GET("", func(c *gin.Context) { GetFiltersHandler(c, catalog, cfg) })
			filterGroup.PUT("", func(c *gin.Context) { UpdateFiltersHandler(c, catalog, cfg) })
			filterGroup.DELETE("", func(c *gin.Context) { ClearFiltersHandler(c, catalog, cfg) })
		}

		userGroup := catalogGroup.Group("/user")
		{
			userGroup.GET("", func(c *gin.Context) { GetUserHandler(c, catalog, cfg) })
			userGroup.PUT("", func(c *gin.Context) { UpdateUserHandler(c, catalog, cfg) })
			userGroup.POST("/theme/toggle", func(c *gin.Context) { ToggleThemeHandler(c, catalog, cfg) })
		}

		catalogGroup.GET("/stats", func(c *gin.Context) { StatsHandler(c, catalog, cfg) })
		catalogGroup.GET("/export", func(c *gin.Context) { ExportHandler(c, catalog, cfg) })
		catalogGroup.POST("/import", func(c *gin.Context) { ImportHandler(c, catalog, cfg) })
	}
}
