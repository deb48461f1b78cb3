package tournament

import (
	"fmt"
	"time"

	"github.com/firetourneys/arena/internal/models"
)

// Battle Royale scoring defaults.
const (
	defaultBRMatchCount     = 1
	defaultBRKillPoints     = 1
	defaultBRPositionPoints = "10,6,5,4,3,2,1"
)

// Clash Squad defaults.
const (
	defaultCSVariant = "Limited"
	defaultCSDevice  = "Both"
)

// CreateTournamentInput is the raw create payload before defaults are applied.
type CreateTournamentInput struct {
	Name                 string    `json:"name" binding:"required,min=3,max=100"`
	Description          string    `json:"description"`
	Type                 string    `json:"type" binding:"required,oneof=solo duo squad"`
	Format               string    `json:"format"`
	PrizePool            int       `json:"prize_pool" binding:"gte=0"`
	EntryFee             int       `json:"entry_fee" binding:"gte=0"`
	Slots                int       `json:"slots" binding:"required,gt=0"`
	StartTime            time.Time `json:"start_time" binding:"required"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	OrganizerID          uint      `json:"organizer_id" binding:"required"`
	GameMode             string    `json:"game_mode" binding:"required,oneof=BR CS"`
	CSGameVariant        string    `json:"cs_game_variant"`
	Device               string    `json:"device"`
	MatchCount           *int      `json:"match_count"`
	KillPoints           *int      `json:"kill_points"`
	PositionPoints       *string   `json:"position_points"`
	IsPromoted           bool      `json:"is_promoted"`
}

// Normalize turns a raw create payload into a Tournament with every
// game-mode-specific default filled in. It is a pure function: same input,
// same output, no storage or HTTP involved.
func Normalize(in CreateTournamentInput) models.Tournament {
	t := models.Tournament{
		Name:                 in.Name,
		Description:          in.Description,
		Type:                 in.Type,
		Format:               in.Format,
		PrizePool:            in.PrizePool,
		EntryFee:             in.EntryFee,
		Slots:                in.Slots,
		Status:               models.StatusOpen,
		StartTime:            in.StartTime,
		RegistrationDeadline: in.RegistrationDeadline,
		OrganizerID:          in.OrganizerID,
		GameMode:             in.GameMode,
		CSGameVariant:        in.CSGameVariant,
		Device:               in.Device,
		IsPromoted:           in.IsPromoted,
	}

	if t.Format == "" {
		t.Format = fmt.Sprintf("%s %s", in.GameMode, in.Type)
	}
	if t.Description == "" {
		t.Description = fmt.Sprintf("Free Fire %s %s tournament", in.GameMode, in.Type)
	}

	switch in.GameMode {
	case models.ModeBattleRoyale:
		t.MatchCount = valueOr(in.MatchCount, defaultBRMatchCount)
		t.KillPoints = valueOr(in.KillPoints, defaultBRKillPoints)
		if in.PositionPoints != nil {
			t.PositionPoints = *in.PositionPoints
		} else {
			t.PositionPoints = defaultBRPositionPoints
		}
	case models.ModeClashSquad:
		t.MatchCount = valueOr(in.MatchCount, 1)
		t.KillPoints = valueOr(in.KillPoints, 0)
		if in.PositionPoints != nil {
			t.PositionPoints = *in.PositionPoints
		}
		if t.CSGameVariant == "" {
			t.CSGameVariant = defaultCSVariant
		}
		if t.Device == "" {
			t.Device = defaultCSDevice
		}
	}

	return t
}

func valueOr(p *int, fallback int) int {
	if p != nil {
		return *p
	}
	return fallback
}
