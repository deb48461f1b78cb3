package tournament

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/firetourneys/arena/config"
	"github.com/firetourneys/arena/internal/models"
	"github.com/firetourneys/arena/internal/store"
	"github.com/firetourneys/arena/pkg/responses"
	"github.com/firetourneys/arena/pkg/validator"
)

// TournamentController handles tournament and registration HTTP requests.
type TournamentController struct {
	store  store.Storage
	config *config.Config
}

func NewTournamentController(st store.Storage, cfg *config.Config) *TournamentController {
	return &TournamentController{store: st, config: cfg}
}

// --- DTOs ---

type RegisterTeamRequest struct {
	UserID        uint     `json:"user_id" binding:"required"`
	TeamName      string   `json:"team_name" binding:"omitempty,min=3,max=50"`
	IglRealName   string   `json:"igl_real_name" binding:"required,min=2,max=50"`
	IglIngameID   string   `json:"igl_ingame_id" binding:"required,min=3,max=30"`
	PlayerNames   []string `json:"player_names"`
	PaymentMethod string   `json:"payment_method"`
}

type UpdateTournamentRequest struct {
	Name                 *string    `json:"name" binding:"omitempty,min=3,max=100"`
	Description          *string    `json:"description"`
	Status               *string    `json:"status" binding:"omitempty,oneof=open starting live completed"`
	PrizePool            *int       `json:"prize_pool" binding:"omitempty,gte=0"`
	EntryFee             *int       `json:"entry_fee" binding:"omitempty,gte=0"`
	Slots                *int       `json:"slots" binding:"omitempty,gt=0"`
	StartTime            *time.Time `json:"start_time"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	IsPromoted           *bool      `json:"is_promoted"`
	PromotionPaid        *bool      `json:"promotion_paid"`
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+param)
		return 0, false
	}
	return uint(id), true
}

// --- Handlers ---

// ListTournaments godoc
// @Summary      List tournaments
// @Description  Returns all tournaments, optionally filtered. The organizerId filter wins over status.
// @Tags         Tournaments
// @Produce      json
// @Param        status       query  string  false  "Filter by status"  Enums(open, starting, live, completed)
// @Param        organizerId  query  int     false  "Filter by organizer"
// @Success      200 {array} models.Tournament
// @Failure      500 {object} responses.ErrorResponse
// @Router       /tournaments [get]
func (tc *TournamentController) ListTournaments(c *gin.Context) {
	var (
		ts  []models.Tournament
		err error
	)

	switch {
	case c.Query("organizerId") != "":
		var organizerID uint64
		organizerID, err = strconv.ParseUint(c.Query("organizerId"), 10, 32)
		if err != nil {
			responses.BadRequest(c, "Invalid organizerId")
			return
		}
		ts, err = tc.store.GetTournamentsByOrganizer(uint(organizerID))
	case c.Query("status") != "":
		ts, err = tc.store.GetTournamentsByStatus(c.Query("status"))
	default:
		ts, err = tc.store.GetAllTournaments()
	}

	if err != nil {
		log.Printf("tournament listing failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if ts == nil {
		ts = []models.Tournament{}
	}
	c.JSON(http.StatusOK, ts)
}

// GetTournament godoc
// @Summary      Get a tournament
// @Tags         Tournaments
// @Produce      json
// @Param        id  path  int  true  "Tournament ID"
// @Success      200 {object} models.Tournament
// @Failure      404 {object} responses.ErrorResponse
// @Router       /tournaments/{id} [get]
func (tc *TournamentController) GetTournament(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	t, err := tc.store.GetTournament(id)
	if err != nil {
		log.Printf("tournament lookup failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	c.JSON(http.StatusOK, t)
}

// CreateTournament godoc
// @Summary      Create a tournament
// @Description  Validates the payload, fills game-mode defaults and creates the tournament with status open.
// @Tags         Tournaments
// @Accept       json
// @Produce      json
// @Param        tournament  body  CreateTournamentInput  true  "Tournament data"
// @Success      201 {object} models.Tournament
// @Failure      400 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /tournaments [post]
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	var in CreateTournamentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		responses.SendValidationError(c, "Invalid tournament payload", validator.ParseError(err))
		return
	}

	t := Normalize(in)
	if err := tc.store.CreateTournament(&t); err != nil {
		log.Printf("tournament creation failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateTournament godoc
// @Summary      Update a tournament
// @Description  Merges the provided fields, including organizer-driven status transitions.
// @Tags         Tournaments
// @Accept       json
// @Produce      json
// @Param        id      path  int  true  "Tournament ID"
// @Param        fields  body  UpdateTournamentRequest  true  "Fields to update"
// @Success      200 {object} models.Tournament
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /tournaments/{id} [put]
func (tc *TournamentController) UpdateTournament(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid update payload", validator.ParseError(err))
		return
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.PrizePool != nil {
		fields["prize_pool"] = *req.PrizePool
	}
	if req.EntryFee != nil {
		fields["entry_fee"] = *req.EntryFee
	}
	if req.Slots != nil {
		fields["slots"] = *req.Slots
	}
	if req.StartTime != nil {
		fields["start_time"] = *req.StartTime
	}
	if req.RegistrationDeadline != nil {
		fields["registration_deadline"] = *req.RegistrationDeadline
	}
	if req.IsPromoted != nil {
		fields["is_promoted"] = *req.IsPromoted
	}
	if req.PromotionPaid != nil {
		fields["promotion_paid"] = *req.PromotionPaid
	}
	if len(fields) == 0 {
		responses.BadRequest(c, "No fields to update")
		return
	}

	t, err := tc.store.UpdateTournament(id, fields)
	if err != nil {
		log.Printf("tournament update failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	c.JSON(http.StatusOK, t)
}

// RegisterTeam godoc
// @Summary      Register a team for a tournament
// @Description  Claims a slot and records the registration. The registration fee snapshots the tournament's entry fee at this moment.
// @Tags         Registrations
// @Accept       json
// @Produce      json
// @Param        id            path  int  true  "Tournament ID"
// @Param        registration  body  RegisterTeamRequest  true  "Team details"
// @Success      201 {object} models.Registration
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /tournaments/{id}/register [post]
func (tc *TournamentController) RegisterTeam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	// Existence is checked before the payload so an unknown tournament answers
	// 404 no matter how broken the body is.
	t, err := tc.store.GetTournament(id)
	if err != nil {
		log.Printf("tournament lookup failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	var req RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid registration payload", validator.ParseError(err))
		return
	}

	reg := &models.Registration{
		TournamentID:    id,
		UserID:          req.UserID,
		TeamName:        req.TeamName,
		IglRealName:     req.IglRealName,
		IglIngameID:     req.IglIngameID,
		PlayerNames:     models.StringSlice(req.PlayerNames),
		RegistrationFee: t.EntryFee, // price at time of registration, never updated
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   req.PaymentMethod,
	}

	if err := tc.store.CreateTournamentRegistration(reg); err != nil {
		switch {
		case errors.Is(err, store.ErrTournamentNotFound):
			responses.NotFound(c, "Tournament")
		case errors.Is(err, store.ErrTournamentFull):
			responses.BadRequest(c, "Tournament is full")
		case errors.Is(err, store.ErrRegistrationClosed):
			responses.BadRequest(c, "Registration is closed for this tournament")
		default:
			log.Printf("registration failed: %v", err)
			responses.InternalServerError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, reg)
}

// GetTournamentRegistrations godoc
// @Summary      List a tournament's registrations
// @Tags         Registrations
// @Produce      json
// @Param        id  path  int  true  "Tournament ID"
// @Success      200 {array} models.Registration
// @Failure      500 {object} responses.ErrorResponse
// @Router       /tournaments/{id}/registrations [get]
func (tc *TournamentController) GetTournamentRegistrations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	rs, err := tc.store.GetTournamentRegistrations(id)
	if err != nil {
		log.Printf("registration listing failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if rs == nil {
		rs = []models.Registration{}
	}
	c.JSON(http.StatusOK, rs)
}

// GetUserRegistrations godoc
// @Summary      List a user's registrations
// @Tags         Registrations
// @Produce      json
// @Param        userId  path  int  true  "User ID"
// @Success      200 {array} models.Registration
// @Failure      500 {object} responses.ErrorResponse
// @Router       /users/{userId}/registrations [get]
func (tc *TournamentController) GetUserRegistrations(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	rs, err := tc.store.GetUserTournamentRegistrations(userID)
	if err != nil {
		log.Printf("registration listing failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if rs == nil {
		rs = []models.Registration{}
	}
	c.JSON(http.StatusOK, rs)
}

// GetOrganizerRegistrations godoc
// @Summary      List every registration across an organizer's tournaments
// @Description  Fans out over the organizer's tournaments and flattens all registrations, each carrying a tournament summary.
// @Tags         Registrations
// @Produce      json
// @Param        organizerId  path  int  true  "Organizer user ID"
// @Success      200 {array} models.OrganizerRegistration
// @Failure      500 {object} responses.ErrorResponse
// @Router       /organizer/{organizerId}/registrations [get]
func (tc *TournamentController) GetOrganizerRegistrations(c *gin.Context) {
	organizerID, ok := parseID(c, "organizerId")
	if !ok {
		return
	}

	ts, err := tc.store.GetTournamentsByOrganizer(organizerID)
	if err != nil {
		log.Printf("organizer tournaments lookup failed: %v", err)
		responses.InternalServerError(c)
		return
	}

	out := []models.OrganizerRegistration{}
	for i := range ts {
		rs, err := tc.store.GetTournamentRegistrations(ts[i].ID)
		if err != nil {
			log.Printf("registration fan-out failed for tournament %d: %v", ts[i].ID, err)
			responses.InternalServerError(c)
			return
		}
		for _, r := range rs {
			out = append(out, models.OrganizerRegistration{
				Registration: r,
				Tournament:   ts[i].Summary(),
			})
		}
	}
	c.JSON(http.StatusOK, out)
}

// GetTournamentBanner godoc
// @Summary      Tournament banner image
// @Description  Serves a banner from the fixed asset pool, chosen deterministically from the tournament id.
// @Tags         Tournaments
// @Produce      image/jpeg
// @Param        id  path  string  true  "Tournament ID"
// @Success      200 {file} binary
// @Failure      404 {object} responses.ErrorResponse
// @Router       /tournament-banner/{id} [get]
func (tc *TournamentController) GetTournamentBanner(c *gin.Context) {
	name := PickBanner(c.Param("id"))
	path := filepath.Join(tc.config.App.BannerDir, name)
	if _, err := os.Stat(path); err != nil {
		responses.NotFound(c, "Banner")
		return
	}
	c.File(path)
}
