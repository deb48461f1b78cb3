package store

import (
	"errors"

	"github.com/firetourneys/arena/internal/models"
	"github.com/firetourneys/arena/internal/user"
)

// Business-rule and lookup failures surfaced by Storage implementations.
// Callers branch with errors.Is; anything else is an opaque storage fault.
var (
	ErrDuplicateUsername    = errors.New("username already taken")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrTournamentFull       = errors.New("tournament is full")
	ErrRegistrationClosed   = errors.New("registration is closed")
)

// Storage is the persistence contract shared by the postgres and in-memory
// variants. Not-found reads return (nil, nil), never an error.
//
// CreateTournamentRegistration is not a pure insert: it atomically increments
// the parent tournament's RegisteredPlayers as part of the same operation, and
// fails with ErrTournamentNotFound, ErrTournamentFull or ErrRegistrationClosed
// without creating a row when the tournament cannot accept the entry.
type Storage interface {
	// Users
	GetUser(id uint) (*user.User, error)
	GetUserByUsername(username string) (*user.User, error)
	CreateUser(u *user.User) error
	UpdateUser(u *user.User) error

	// Refresh tokens
	SaveRefreshToken(rt *user.RefreshToken) error
	GetRefreshToken(token string) (*user.RefreshToken, error)

	// Tournaments
	GetTournament(id uint) (*models.Tournament, error)
	GetAllTournaments() ([]models.Tournament, error)
	GetTournamentsByStatus(status string) ([]models.Tournament, error)
	GetTournamentsByOrganizer(organizerID uint) ([]models.Tournament, error)
	CreateTournament(t *models.Tournament) error
	UpdateTournament(id uint, fields map[string]interface{}) (*models.Tournament, error)

	// Registrations
	GetRegistration(id uint) (*models.Registration, error)
	GetTournamentRegistrations(tournamentID uint) ([]models.Registration, error)
	GetUserTournamentRegistrations(userID uint) ([]models.Registration, error)
	CreateTournamentRegistration(r *models.Registration) error
	UpdateRegistrationPayment(id uint, status, method, transactionID string) error
}
