package reservations

import (
	"cinereserve/internal/shared/config"
	"cinereserve/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	rg.GET("/showtimes/:id/availability", controller.Availability)

	authed := rg.Group("")
	authed.Use(middleware.JWTAuthWithConfig(cfg))
	{
		authed.POST("/showtimes/:id/reservations", controller.Create)
		authed.GET("/reservations/mine", controller.ListMine)
		authed.DELETE("/reservations/:id", controller.Cancel)
	}
}
