package tournament

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firetourneys/arena/config"
	"github.com/firetourneys/arena/internal/models"
	"github.com/firetourneys/arena/internal/store"
)

func newTestRouter(t *testing.T, st store.Storage, bannerDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.BannerDir = bannerDir

	r := gin.New()
	api := r.Group("/api")
	TournamentRoutes(api, st, cfg)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedTournament(t *testing.T, st store.Storage, mutate func(*models.Tournament)) *models.Tournament {
	t.Helper()

	tour := &models.Tournament{
		Name:        "Friday Scrims",
		Type:        models.TypeSquad,
		Slots:       12,
		EntryFee:    50,
		Status:      models.StatusOpen,
		OrganizerID: 1,
		GameMode:    models.ModeBattleRoyale,
		StartTime:   time.Now().Add(24 * time.Hour),
	}
	if mutate != nil {
		mutate(tour)
	}
	require.NoError(t, st.CreateTournament(tour))
	return tour
}

func TestCreateTournamentFillsDefaults(t *testing.T) {
	st := store.NewMemStorage()
	r := newTestRouter(t, st, "")

	w := doJSON(t, r, http.MethodPost, "/api/tournaments", gin.H{
		"name":         "Weekend Clash",
		"type":         "squad",
		"slots":        48,
		"entry_fee":    25,
		"organizer_id": 7,
		"game_mode":    "BR",
		"start_time":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Tournament
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotZero(t, got.ID)
	assert.Equal(t, models.StatusOpen, got.Status)
	assert.Equal(t, 0, got.RegisteredPlayers)
	assert.Equal(t, 1, got.MatchCount)
	assert.Equal(t, "10,6,5,4,3,2,1", got.PositionPoints)
	assert.Equal(t, "BR squad", got.Format)
}

func TestCreateTournamentValidation(t *testing.T) {
	st := store.NewMemStorage()
	r := newTestRouter(t, st, "")

	// Name too short, slots missing.
	w := doJSON(t, r, http.MethodPost, "/api/tournaments", gin.H{
		"name":         "ab",
		"type":         "squad",
		"organizer_id": 7,
		"game_mode":    "BR",
		"start_time":   time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Message)
	assert.NotEmpty(t, body.Errors)
}

func TestListTournamentsFilterPriority(t *testing.T) {
	st := store.NewMemStorage()
	r := newTestRouter(t, st, "")

	seedTournament(t, st, func(x *models.Tournament) { x.OrganizerID = 1; x.Status = models.StatusOpen })
	seedTournament(t, st, func(x *models.Tournament) { x.OrganizerID = 2; x.Status = models.StatusOpen })
	live := seedTournament(t, st, func(x *models.Tournament) { x.OrganizerID = 2 })
	_, err := st.UpdateTournament(live.ID, map[string]interface{}{"status": models.StatusLive})
	require.NoError(t, err)

	decode := func(w *httptest.ResponseRecorder) []models.Tournament {
		require.Equal(t, http.StatusOK, w.Code)
		var ts []models.Tournament
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ts))
		return ts
	}

	assert.Len(t, decode(doJSON(t, r, http.MethodGet, "/api/tournaments", nil)), 3)
	assert.Len(t, decode(doJSON(t, r, http.MethodGet, "/api/tournaments?status=live", nil)), 1)

	// organizerId wins when both filters are present.
	ts := decode(doJSON(t, r, http.MethodGet, "/api/tournaments?organizerId=2&status=live", nil))
	assert.Len(t, ts, 2)
	for _, x := range ts {
		assert.Equal(t, uint(2), x.OrganizerID)
	}
}

func TestGetTournamentNotFound(t *testing.T) {
	st := store.NewMemStorage()
	r := newTestRouter(t, st, "")

	w := doJSON(t, r, http.MethodGet, "/api/tournaments/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/tournaments/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTournament(t *testing.T) {
	st := store.NewMemStorage()
	r := newTestRouter(t, st, "")
	tour := seedTournament(t, st, nil)

	w := doJSON(t, r, http.MethodPut, "/api/tournaments/1", gin.H{
		"status":     "live",
		"prize_pool": 500,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Tournament
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusLive, got.Status)
	assert.Equal(t, 500, got.PrizePool)
	assert.Equal(t, tour.Name, got.Name)

	w = doJSON(t, r, http.MethodPut, "/api/tournaments/999", gin.H{"status": "live"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/tournaments/1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterTeam(t *testing.T) {
	st := store.NewMemStorage()
	r := newTestRouter(t, st, "")
	seedTournament(t, st, func(x *models.Tournament) { x.EntryFee = 80 })

	w := doJSON(t, r, http.MethodPost, "/api/tournaments/1/register", gin.H{
		"user_id":       5,
		"team_name":     "Night Wolves",
		"igl_real_name": "Arjun",
		"igl_ingame_id": "NW-ARJUN",
		"player_names":  []string{"Arjun", "Kiran", "Dev", "Maya"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reg models.Registration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotZero(t, reg.ID)
	assert.Equal(t, 80, reg.RegistrationFee, "fee snapshots the entry fee at registration time")
	assert.Equal(t, models.PaymentPending, reg.PaymentStatus)
	assert.False(t, reg.RegisteredAt.IsZero())

	tour, err := st.GetTournament(1)
	require.NoError(t, err)
	assert.Equal(t, 1, tour.RegisteredPlayers)
}

func TestRegisterTeamErrors(t *testing.T) {
	st := store.NewMemStorage()
	r := newTestRouter(t, st, "")

	payload := gin.H{
		"user_id":       5,
		"igl_real_name": "Arjun",
		"igl_ingame_id": "NW-ARJUN",
	}

	w := doJSON(t, r, http.MethodPost, "/api/tournaments/42/register", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// An unknown tournament beats payload validation.
	w = doJSON(t, r, http.MethodPost, "/api/tournaments/42/register", gin.H{"user_id": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)

	seedTournament(t, st, func(x *models.Tournament) { x.Slots = 1 })
	w = doJSON(t, r, http.MethodPost, "/api/tournaments/1/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/tournaments/1/register", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	closed := seedTournament(t, st, nil)
	_, err := st.UpdateTournament(closed.ID, map[string]interface{}{"status": models.StatusCompleted})
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodPost, "/api/tournaments/2/register", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing IGL details never reach the store.
	w = doJSON(t, r, http.MethodPost, "/api/tournaments/1/register", gin.H{"user_id": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrationListings(t *testing.T) {
	st := store.NewMemStorage()
	r := newTestRouter(t, st, "")

	seedTournament(t, st, func(x *models.Tournament) { x.OrganizerID = 9 })
	seedTournament(t, st, func(x *models.Tournament) { x.OrganizerID = 9; x.Name = "Saturday Finals" })
	seedTournament(t, st, func(x *models.Tournament) { x.OrganizerID = 3 })

	register := func(tournamentID string, userID uint) {
		w := doJSON(t, r, http.MethodPost, "/api/tournaments/"+tournamentID+"/register", gin.H{
			"user_id":       userID,
			"igl_real_name": "Lead",
			"igl_ingame_id": "LEAD-1",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	register("1", 5)
	register("2", 5)
	register("1", 6)

	w := doJSON(t, r, http.MethodGet, "/api/tournaments/1/registrations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rs []models.Registration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rs))
	assert.Len(t, rs, 2)

	w = doJSON(t, r, http.MethodGet, "/api/users/5/registrations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rs = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rs))
	assert.Len(t, rs, 2)

	// Organizer view flattens registrations across their tournaments only.
	w = doJSON(t, r, http.MethodGet, "/api/organizer/9/registrations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ors []models.OrganizerRegistration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ors))
	require.Len(t, ors, 3)
	for _, or := range ors {
		assert.NotZero(t, or.Tournament.ID)
		assert.NotEmpty(t, or.Tournament.Name)
	}

	// Empty results are JSON arrays, not null.
	w = doJSON(t, r, http.MethodGet, "/api/tournaments/3/registrations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetTournamentBanner(t *testing.T) {
	st := store.NewMemStorage()
	dir := t.TempDir()
	for _, name := range bannerFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("jpeg-bytes"), 0o644))
	}
	r := newTestRouter(t, st, dir)

	w := doJSON(t, r, http.MethodGet, "/api/tournament-banner/17", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg-bytes", w.Body.String())

	// Same id, same banner.
	w2 := doJSON(t, r, http.MethodGet, "/api/tournament-banner/17", nil)
	assert.Equal(t, w.Body.String(), w2.Body.String())

	missing := newTestRouter(t, st, filepath.Join(dir, "nope"))
	w = doJSON(t, missing, http.MethodGet, "/api/tournament-banner/17", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
