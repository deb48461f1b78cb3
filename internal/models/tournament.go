package models

import (
	"time"

	"gorm.io/gorm"
)

// Tournament statuses.
const (
	StatusOpen      = "open"
	StatusStarting  = "starting"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

// Team types.
const (
	TypeSolo  = "solo"
	TypeDuo   = "duo"
	TypeSquad = "squad"
)

// Game modes.
const (
	ModeBattleRoyale = "BR"
	ModeClashSquad   = "CS"
)

// Payment statuses on a registration.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Tournament is a competition instance created by an organizer.
// RegisteredPlayers counts successful registrations and never exceeds Slots;
// the increment happens atomically with the registration insert in storage.
type Tournament struct {
	gorm.Model
	Name                 string    `json:"name" gorm:"not null"`
	Description          string    `json:"description"`
	Type                 string    `json:"type" gorm:"not null;index"` // solo|duo|squad
	Format               string    `json:"format"`
	PrizePool            int       `json:"prize_pool" gorm:"default:0"`
	EntryFee             int       `json:"entry_fee" gorm:"default:0"` // slot price, minor units
	Slots                int       `json:"slots" gorm:"not null"`
	RegisteredPlayers    int       `json:"registered_players" gorm:"default:0"`
	Status               string    `json:"status" gorm:"default:'open';index"`
	StartTime            time.Time `json:"start_time"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	OrganizerID          uint      `json:"organizer_id" gorm:"index"`

	// Game-mode specifics.
	GameMode       string `json:"game_mode" gorm:"index"` // BR|CS
	CSGameVariant  string `json:"cs_game_variant"`
	Device         string `json:"device"`
	MatchCount     int    `json:"match_count"`
	KillPoints     int    `json:"kill_points"`
	PositionPoints string `json:"position_points"`
	IsPromoted     bool   `json:"is_promoted" gorm:"default:false"`
	PromotionPaid  bool   `json:"promotion_paid" gorm:"default:false"`
}

// Registration is a team's entry into a tournament. RegistrationFee snapshots
// the tournament's entry fee at registration time and never changes afterwards.
type Registration struct {
	gorm.Model
	TournamentID    uint        `json:"tournament_id" gorm:"index;not null"`
	UserID          uint        `json:"user_id" gorm:"index;not null"`
	TeamName        string      `json:"team_name"`
	IglRealName     string      `json:"igl_real_name" gorm:"not null"`
	IglIngameID     string      `json:"igl_ingame_id" gorm:"not null"`
	PlayerNames     StringSlice `json:"player_names" gorm:"type:json"`
	RegistrationFee int         `json:"registration_fee"`
	PaymentStatus   string      `json:"payment_status" gorm:"default:'pending'"`
	PaymentMethod   string      `json:"payment_method"`
	TransactionID   string      `json:"transaction_id"`
	RegisteredAt    time.Time   `json:"registered_at"`
}

// TournamentSummary is the nested shape embedded in organizer registration
// listings.
type TournamentSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	GameMode  string `json:"game_mode"`
	Type      string `json:"type"`
	PrizePool int    `json:"prize_pool"`
}

// Summary projects a tournament into its listing shape.
func (t *Tournament) Summary() TournamentSummary {
	return TournamentSummary{
		ID:        t.ID,
		Name:      t.Name,
		GameMode:  t.GameMode,
		Type:      t.Type,
		PrizePool: t.PrizePool,
	}
}

// OrganizerRegistration is a registration enriched with its tournament summary,
// returned by the organizer fan-out endpoint.
type OrganizerRegistration struct {
	Registration
	Tournament TournamentSummary `json:"tournament"`
}
