package payment

import (
	"github.com/gin-gonic/gin"

	"github.com/firetourneys/arena/config"
	"github.com/firetourneys/arena/internal/store"
)

func PaymentRoutes(router *gin.RouterGroup, st store.Storage, cfg *config.Config) {
	controller := NewPaymentController(st, NewSimulator(cfg.Payment.Latency))

	router.POST("/registrations/:id/payment", controller.ProcessPayment)
}
