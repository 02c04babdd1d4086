package users

import (
	"cinereserve/internal/shared/config"
	"cinereserve/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	admin := rg.Group("/admin/users")
	admin.Use(middleware.JWTAuthWithConfig(cfg))
	{
		admin.GET("", middleware.RequireStaff(), controller.List)

		// Role changes are reserved for the super admin.
		admin.POST("/:id/promote", middleware.RequireSuperAdmin(), controller.Promote)
		admin.POST("/:id/demote", middleware.RequireSuperAdmin(), controller.Demote)
	}
}
