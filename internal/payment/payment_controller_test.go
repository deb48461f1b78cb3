package payment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firetourneys/arena/config"
	"github.com/firetourneys/arena/internal/models"
	"github.com/firetourneys/arena/internal/store"
)

func newPaymentRouter(t *testing.T, st store.Storage) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{} // zero latency keeps the simulator instant in tests

	r := gin.New()
	api := r.Group("/api")
	PaymentRoutes(api, st, cfg)
	return r
}

func seedRegistration(t *testing.T, st store.Storage) *models.Registration {
	t.Helper()

	tour := &models.Tournament{
		Name:      "Friday Scrims",
		Type:      models.TypeSquad,
		Slots:     12,
		EntryFee:  50,
		Status:    models.StatusOpen,
		GameMode:  models.ModeBattleRoyale,
		StartTime: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, st.CreateTournament(tour))

	reg := &models.Registration{
		TournamentID:  tour.ID,
		UserID:        5,
		IglRealName:   "Arjun",
		IglIngameID:   "NW-ARJUN",
		PaymentMethod: "upi",
	}
	require.NoError(t, st.CreateTournamentRegistration(reg))
	return reg
}

func TestProcessPaymentPersistsOutcome(t *testing.T) {
	st := store.NewMemStorage()
	r := newPaymentRouter(t, st)
	reg := seedRegistration(t, st)

	body := bytes.NewBufferString(`{"payment_method":"card"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/registrations/1/payment", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Contains(t, []string{models.PaymentCompleted, models.PaymentFailed}, result.Status)
	assert.NotEmpty(t, result.TransactionID)
	assert.Contains(t, result.Message, "card")

	stored, err := st.GetRegistration(reg.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, result.Status, stored.PaymentStatus)
	assert.Equal(t, result.TransactionID, stored.TransactionID)
	assert.Equal(t, "card", stored.PaymentMethod)
}

func TestProcessPaymentDefaultsToRegistrationMethod(t *testing.T) {
	st := store.NewMemStorage()
	r := newPaymentRouter(t, st)
	seedRegistration(t, st)

	// No body at all: the method chosen at registration time is used.
	req := httptest.NewRequest(http.MethodPost, "/api/registrations/1/payment", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Contains(t, result.Message, "upi")
}

func TestProcessPaymentMalformedBody(t *testing.T) {
	st := store.NewMemStorage()
	r := newPaymentRouter(t, st)
	reg := seedRegistration(t, st)

	body := bytes.NewBufferString(`{"payment_method":`)
	req := httptest.NewRequest(http.MethodPost, "/api/registrations/1/payment", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored, err := st.GetRegistration(reg.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.PaymentPending, stored.PaymentStatus)
}

func TestProcessPaymentUnknownRegistration(t *testing.T) {
	st := store.NewMemStorage()
	r := newPaymentRouter(t, st)

	req := httptest.NewRequest(http.MethodPost, "/api/registrations/999/payment", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/registrations/abc/payment", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
