package auth

import (
	"time"

	"github.com/firetourneys/arena/internal/user"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30" example:"headhunter"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"password123"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"headhunter"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type SelectRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=organizer player" example:"organizer"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// FilterUserRecord strips the password hash from a user before it leaves the API.
func FilterUserRecord(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
