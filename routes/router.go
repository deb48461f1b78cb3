package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/firetourneys/arena/config"
	"github.com/firetourneys/arena/internal/auth"
	"github.com/firetourneys/arena/internal/payment"
	"github.com/firetourneys/arena/internal/store"
	"github.com/firetourneys/arena/internal/tournament"
)

// SetupRoutes builds the gin engine with every feature's routes mounted under
// /api. The storage handle is injected, never pulled from a global.
func SetupRoutes(st store.Storage, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.Static("/public", "./public")

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, st, cfg)
	tournament.TournamentRoutes(api, st, cfg)
	payment.PaymentRoutes(api, st, cfg)

	return r
}
