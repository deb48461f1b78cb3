package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/firetourneys/arena/internal/models"
	"github.com/firetourneys/arena/internal/user"
)

// MemStorage is the in-memory Storage variant, used for tests and for running
// the server without a database. A single mutex serializes every mutation, so
// the slot-claim-plus-insert in CreateTournamentRegistration is atomic here too.
type MemStorage struct {
	mu sync.RWMutex

	users         map[uint]*user.User
	refreshTokens map[string]*user.RefreshToken
	tournaments   map[uint]*models.Tournament
	registrations map[uint]*models.Registration

	// insertion order for list reads
	tournamentOrder   []uint
	registrationOrder []uint

	nextUserID         uint
	nextTournamentID   uint
	nextRegistrationID uint
	nextTokenID        uint
}

var _ Storage = (*MemStorage)(nil)

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:         make(map[uint]*user.User),
		refreshTokens: make(map[string]*user.RefreshToken),
		tournaments:   make(map[uint]*models.Tournament),
		registrations: make(map[uint]*models.Registration),
	}
}

// --- Users ---

func (s *MemStorage) GetUser(id uint) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *MemStorage) GetUserByUsername(username string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUserByUsername(strings.ToLower(username)), nil
}

func (s *MemStorage) findUserByUsername(username string) *user.User {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (s *MemStorage) CreateUser(u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Username = strings.ToLower(u.Username)
	if existing := s.findUserByUsername(u.Username); existing != nil {
		return ErrDuplicateUsername
	}
	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemStorage) UpdateUser(u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.UpdatedAt = time.Now()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

// --- Refresh tokens ---

func (s *MemStorage) SaveRefreshToken(rt *user.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Token values carry a unique index in the gorm variant.
	if _, exists := s.refreshTokens[rt.Token]; exists {
		return errors.New("refresh token already exists")
	}
	s.nextTokenID++
	rt.ID = s.nextTokenID
	rt.CreatedAt = time.Now()
	cp := *rt
	s.refreshTokens[rt.Token] = &cp
	return nil
}

func (s *MemStorage) GetRefreshToken(token string) (*user.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.refreshTokens[token]
	if !ok || rt.Revoked {
		return nil, nil
	}
	cp := *rt
	return &cp, nil
}

// --- Tournaments ---

func (s *MemStorage) GetTournament(id uint) (*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *MemStorage) GetAllTournaments() ([]models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tournament, 0, len(s.tournamentOrder))
	for _, id := range s.tournamentOrder {
		out = append(out, *s.tournaments[id])
	}
	return out, nil
}

func (s *MemStorage) GetTournamentsByStatus(status string) ([]models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Tournament
	for _, id := range s.tournamentOrder {
		if t := s.tournaments[id]; t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *MemStorage) GetTournamentsByOrganizer(organizerID uint) ([]models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Tournament
	for _, id := range s.tournamentOrder {
		if t := s.tournaments[id]; t.OrganizerID == organizerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *MemStorage) CreateTournament(t *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTournamentID++
	t.ID = s.nextTournamentID
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	t.RegisteredPlayers = 0
	if t.Status == "" {
		t.Status = models.StatusOpen
	}
	cp := *t
	s.tournaments[t.ID] = &cp
	s.tournamentOrder = append(s.tournamentOrder, t.ID)
	return nil
}

func (s *MemStorage) UpdateTournament(id uint, fields map[string]interface{}) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, nil
	}
	applyTournamentFields(t, fields)
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

// applyTournamentFields merges a partial column map the same way the gorm
// variant's Updates call does. Only columns the API layer actually patches are
// handled.
func applyTournamentFields(t *models.Tournament, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case "name":
			t.Name = v.(string)
		case "description":
			t.Description = v.(string)
		case "status":
			t.Status = v.(string)
		case "entry_fee":
			t.EntryFee = v.(int)
		case "prize_pool":
			t.PrizePool = v.(int)
		case "slots":
			t.Slots = v.(int)
		case "start_time":
			t.StartTime = v.(time.Time)
		case "registration_deadline":
			t.RegistrationDeadline = v.(time.Time)
		case "is_promoted":
			t.IsPromoted = v.(bool)
		case "promotion_paid":
			t.PromotionPaid = v.(bool)
		}
	}
}

// --- Registrations ---

func (s *MemStorage) GetRegistration(id uint) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.registrations[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *MemStorage) GetTournamentRegistrations(tournamentID uint) ([]models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Registration
	for _, id := range s.registrationOrder {
		if r := s.registrations[id]; r.TournamentID == tournamentID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *MemStorage) GetUserTournamentRegistrations(userID uint) ([]models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Registration
	for _, id := range s.registrationOrder {
		if r := s.registrations[id]; r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *MemStorage) CreateTournamentRegistration(r *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[r.TournamentID]
	if !ok {
		return ErrTournamentNotFound
	}
	if t.RegisteredPlayers >= t.Slots {
		return ErrTournamentFull
	}
	if t.Status != models.StatusOpen {
		return ErrRegistrationClosed
	}

	t.RegisteredPlayers++

	s.nextRegistrationID++
	r.ID = s.nextRegistrationID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	if r.RegisteredAt.IsZero() {
		r.RegisteredAt = r.CreatedAt
	}
	if r.PaymentStatus == "" {
		r.PaymentStatus = models.PaymentPending
	}
	cp := *r
	s.registrations[r.ID] = &cp
	s.registrationOrder = append(s.registrationOrder, r.ID)
	return nil
}

func (s *MemStorage) UpdateRegistrationPayment(id uint, status, method, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.registrations[id]
	if !ok {
		return ErrRegistrationNotFound
	}
	r.PaymentStatus = status
	r.PaymentMethod = method
	r.TransactionID = transactionID
	r.UpdatedAt = time.Now()
	return nil
}
