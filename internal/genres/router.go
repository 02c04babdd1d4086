package genres

import (
	"cinereserve/internal/shared/config"
	"cinereserve/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupGenreRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	rg.GET("/genres", controller.List)

	admin := rg.Group("/admin/genres")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireStaff())
	{
		admin.POST("", controller.Create)
		admin.PUT("/:id", controller.Update)
		admin.DELETE("/:id", controller.Delete)
	}
}
