package user

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleOrganizer = "organizer"
	RolePlayer    = "player"
)

// User is an identity record. Usernames are stored lower-cased and are unique.
// Role stays empty until the user picks organizer or player.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}
