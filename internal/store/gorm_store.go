package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/firetourneys/arena/internal/models"
	"github.com/firetourneys/arena/internal/user"
)

// DatabaseStorage is the postgres-backed Storage variant.
type DatabaseStorage struct {
	db *gorm.DB
}

var _ Storage = (*DatabaseStorage)(nil)

func NewDatabaseStorage(db *gorm.DB) *DatabaseStorage {
	return &DatabaseStorage{db: db}
}

// AutoMigrate creates or updates the schema for every entity this storage owns.
func (s *DatabaseStorage) AutoMigrate() error {
	return s.db.AutoMigrate(
		&user.User{}, &user.RefreshToken{},
		&models.Tournament{}, &models.Registration{},
	)
}

// --- Users ---

func (s *DatabaseStorage) GetUser(id uint) (*user.User, error) {
	var u user.User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *DatabaseStorage) GetUserByUsername(username string) (*user.User, error) {
	var u user.User
	if err := s.db.Where("username = ?", strings.ToLower(username)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *DatabaseStorage) CreateUser(u *user.User) error {
	u.Username = strings.ToLower(u.Username)
	if err := s.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (s *DatabaseStorage) UpdateUser(u *user.User) error {
	return s.db.Save(u).Error
}

// --- Refresh tokens ---

func (s *DatabaseStorage) SaveRefreshToken(rt *user.RefreshToken) error {
	return s.db.Create(rt).Error
}

func (s *DatabaseStorage) GetRefreshToken(token string) (*user.RefreshToken, error) {
	var rt user.RefreshToken
	if err := s.db.Where("token = ? AND revoked = ?", token, false).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

// --- Tournaments ---

func (s *DatabaseStorage) GetTournament(id uint) (*models.Tournament, error) {
	var t models.Tournament
	if err := s.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *DatabaseStorage) GetAllTournaments() ([]models.Tournament, error) {
	var ts []models.Tournament
	if err := s.db.Order("id").Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *DatabaseStorage) GetTournamentsByStatus(status string) ([]models.Tournament, error) {
	var ts []models.Tournament
	if err := s.db.Where("status = ?", status).Order("id").Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *DatabaseStorage) GetTournamentsByOrganizer(organizerID uint) ([]models.Tournament, error) {
	var ts []models.Tournament
	if err := s.db.Where("organizer_id = ?", organizerID).Order("id").Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *DatabaseStorage) CreateTournament(t *models.Tournament) error {
	if t.Status == "" {
		t.Status = models.StatusOpen
	}
	t.RegisteredPlayers = 0
	return s.db.Create(t).Error
}

func (s *DatabaseStorage) UpdateTournament(id uint, fields map[string]interface{}) (*models.Tournament, error) {
	res := s.db.Model(&models.Tournament{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetTournament(id)
}

// --- Registrations ---

func (s *DatabaseStorage) GetRegistration(id uint) (*models.Registration, error) {
	var r models.Registration
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *DatabaseStorage) GetTournamentRegistrations(tournamentID uint) ([]models.Registration, error) {
	var rs []models.Registration
	if err := s.db.Where("tournament_id = ?", tournamentID).Order("id").Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (s *DatabaseStorage) GetUserTournamentRegistrations(userID uint) ([]models.Registration, error) {
	var rs []models.Registration
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

// CreateTournamentRegistration claims a slot with a guarded conditional update
// and inserts the registration row in the same transaction, so two concurrent
// calls can never both take the last slot.
func (s *DatabaseStorage) CreateTournamentRegistration(r *models.Registration) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Tournament{}).
			Where("id = ? AND registered_players < slots AND status = ?", r.TournamentID, models.StatusOpen).
			UpdateColumn("registered_players", gorm.Expr("registered_players + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// The guard matched nothing; reload to report why.
			var t models.Tournament
			if err := tx.First(&t, r.TournamentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTournamentNotFound
				}
				return err
			}
			if t.RegisteredPlayers >= t.Slots {
				return ErrTournamentFull
			}
			return ErrRegistrationClosed
		}
		if r.RegisteredAt.IsZero() {
			r.RegisteredAt = time.Now()
		}
		if r.PaymentStatus == "" {
			r.PaymentStatus = models.PaymentPending
		}
		return tx.Create(r).Error
	})
}

func (s *DatabaseStorage) UpdateRegistrationPayment(id uint, status, method, transactionID string) error {
	res := s.db.Model(&models.Registration{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_status": status,
		"payment_method": method,
		"transaction_id": transactionID,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}
