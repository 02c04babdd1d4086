package auth

import (
	"cinereserve/internal/shared/config"
	"cinereserve/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", authRouter.controller.Signup)
		auth.POST("/login", authRouter.controller.Login)
	}

	me := rg.Group("/me")
	me.Use(middleware.JWTAuthWithConfig(authRouter.config))
	{
		me.GET("", authRouter.controller.Me)
	}
}
