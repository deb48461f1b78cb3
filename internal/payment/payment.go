package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/firetourneys/arena/internal/models"
)

const successRate = 0.9

// Result is the outcome of one simulated payment attempt. A failed payment is
// a normal business outcome, not an error.
type Result struct {
	Success       bool   `json:"success"`
	Status        string `json:"status"` // models.PaymentCompleted or models.PaymentFailed
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

// Simulator stands in for an external payment gateway. Each call waits out
// Latency to model the network round-trip, then draws an unseeded uniform
// random outcome: success with probability 0.9 regardless of method or amount.
type Simulator struct {
	Latency time.Duration
}

func NewSimulator(latency time.Duration) *Simulator {
	return &Simulator{Latency: latency}
}

// Process runs one payment attempt for a registration. The context lets
// callers bound the simulated latency; the draw itself never fails.
func (s *Simulator) Process(ctx context.Context, registrationID uint, method string) (Result, error) {
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	txnID := fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])

	if rand.Float64() < successRate {
		return Result{
			Success:       true,
			Status:        models.PaymentCompleted,
			TransactionID: txnID,
			Message:       fmt.Sprintf("Payment via %s processed successfully", methodLabel(method)),
		}, nil
	}
	return Result{
		Success:       false,
		Status:        models.PaymentFailed,
		TransactionID: txnID,
		Message:       fmt.Sprintf("Payment via %s was declined, please try again", methodLabel(method)),
	}, nil
}

func methodLabel(method string) string {
	if method == "" {
		return "wallet"
	}
	return method
}
