package movies

import (
	"cinereserve/internal/shared/config"
	"cinereserve/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMovieRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	rg.GET("/movies", controller.List)
	rg.GET("/movies/:id", controller.Get)

	admin := rg.Group("/admin/movies")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireStaff())
	{
		admin.GET("", controller.ListAdmin)
		admin.POST("", controller.Create)
		admin.PUT("/:id", controller.Update)
		admin.DELETE("/:id", controller.Delete)
	}
}
