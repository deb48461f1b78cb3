package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/firetourneys/arena/config"
	"github.com/firetourneys/arena/internal/middleware"
	"github.com/firetourneys/arena/internal/store"
)

func RegisterAuthRoutes(router *gin.RouterGroup, st store.Storage, cfg *config.Config) {
	controller := NewAuthController(st, cfg)

	public := router.Group("/auth")
	{
		public.POST("/register", controller.Register)
		public.POST("/login", controller.Login)
		public.POST("/refresh-token", controller.RefreshToken)
	}

	protected := router.Group("/auth")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.AccessTokenSecret, st))
	{
		protected.GET("/me", controller.GetProfile)
		protected.PUT("/role", controller.SelectRole)
	}
}
