package payment

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/firetourneys/arena/internal/store"
	"github.com/firetourneys/arena/pkg/responses"
)

type PaymentController struct {
	store     store.Storage
	simulator *Simulator
}

func NewPaymentController(st store.Storage, sim *Simulator) *PaymentController {
	return &PaymentController{store: st, simulator: sim}
}

type ProcessPaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// ProcessPayment godoc
// @Summary      Run the simulated payment for a registration
// @Description  Simulates the gateway round-trip and persists the outcome on the registration. A declined payment still returns 200.
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        id       path  int  true  "Registration ID"
// @Param        payment  body  ProcessPaymentRequest  false  "Payment method"
// @Success      200 {object} Result
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /registrations/{id}/payment [post]
func (pc *PaymentController) ProcessPayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid registration ID")
		return
	}

	var req ProcessPaymentRequest
	// The body is optional; an absent one falls back to the method chosen at
	// registration time. A body that is present must still parse.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.BadRequest(c, "Invalid payment payload")
			return
		}
	}

	reg, err := pc.store.GetRegistration(uint(id))
	if err != nil {
		log.Printf("registration lookup failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if reg == nil {
		responses.NotFound(c, "Registration")
		return
	}

	method := req.PaymentMethod
	if method == "" {
		method = reg.PaymentMethod
	}

	result, err := pc.simulator.Process(c.Request.Context(), reg.ID, method)
	if err != nil {
		log.Printf("payment simulation aborted: %v", err)
		responses.InternalServerError(c)
		return
	}

	if err := pc.store.UpdateRegistrationPayment(reg.ID, result.Status, method, result.TransactionID); err != nil {
		log.Printf("payment outcome persistence failed: %v", err)
		responses.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, result)
}
