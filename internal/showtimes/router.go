package showtimes

import (
	"cinereserve/internal/shared/config"
	"cinereserve/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupShowtimeRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	rg.GET("/movies/:id/showtimes", controller.ListForMovie)
	rg.GET("/showtimes/:id", controller.Get)
	rg.GET("/showtimes/:id/seats", controller.SeatLayout)

	admin := rg.Group("/admin/showtimes")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireStaff())
	{
		admin.GET("", controller.ListForDate)
		admin.POST("", controller.Create)
		admin.PUT("/:id", controller.Update)
		admin.DELETE("/:id", controller.Delete)
	}
}
