package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/firetourneys/arena/config"
	"github.com/firetourneys/arena/internal/middleware"
	"github.com/firetourneys/arena/internal/store"
	"github.com/firetourneys/arena/internal/user"
	"github.com/firetourneys/arena/pkg/responses"
	"github.com/firetourneys/arena/pkg/token"
	"github.com/firetourneys/arena/pkg/validator"
	"github.com/firetourneys/arena/utils"
)

type AuthController struct {
	store  store.Storage
	config *config.Config
}

func NewAuthController(st store.Storage, cfg *config.Config) *AuthController {
	return &AuthController{store: st, config: cfg}
}

func (ac *AuthController) generateAndSaveTokens(u *user.User) (string, string, error) {
	accessToken, err := token.GenerateJWT(u.ID, u.Role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", err
	}

	refreshTokenString, err := token.GenerateRefreshToken(u.ID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", err
	}

	rt := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.store.SaveRefreshToken(rt); err != nil {
		return "", "", err
	}
	return accessToken, refreshTokenString, nil
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user with a unique username and returns tokens.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "Sign-up details"
// @Success      201   {object} AuthResponse
// @Failure      400   {object} responses.ErrorResponse
// @Failure      409   {object} responses.ErrorResponse
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid sign-up payload", validator.ParseError(err))
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("password hashing failed: %v", err)
		responses.InternalServerError(c)
		return
	}

	newUser := &user.User{
		Username: req.Username,
		Password: hashedPassword,
	}
	if err := ac.store.CreateUser(newUser); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			responses.Conflict(c, "Username already taken")
			return
		}
		log.Printf("user creation failed: %v", err)
		responses.InternalServerError(c)
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		responses.InternalServerError(c)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(newUser),
	})
}

// Login godoc
// @Summary      Login
// @Description  Authenticates a user by username and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} AuthResponse
// @Failure      401   {object} responses.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid login payload", validator.ParseError(err))
		return
	}

	foundUser, err := ac.store.GetUserByUsername(req.Username)
	if err != nil {
		log.Printf("user lookup failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if foundUser == nil || !utils.CheckPassword(foundUser.Password, req.Password) {
		responses.Unauthorized(c, "Invalid credentials")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(foundUser)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		responses.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(foundUser),
	})
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} map[string]string
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid payload", validator.ParseError(err))
		return
	}

	rt, err := ac.store.GetRefreshToken(req.RefreshToken)
	if err != nil {
		log.Printf("refresh token lookup failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if rt == nil || rt.ExpiresAt.Before(time.Now()) {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	u, err := ac.store.GetUser(rt.UserID)
	if err != nil || u == nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	newAccessToken, err := token.GenerateJWT(u.ID, u.Role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		responses.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": newAccessToken})
}

// GetProfile godoc
// @Summary      Current user profile
// @Tags         Auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} UserResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	currentUser, err := ac.store.GetUser(userID)
	if err != nil {
		log.Printf("user lookup failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if currentUser == nil {
		responses.NotFound(c, "User")
		return
	}
	c.JSON(http.StatusOK, FilterUserRecord(currentUser))
}

// SelectRole godoc
// @Summary      Choose organizer or player role
// @Description  Assigns the account role. The choice is permanent.
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body SelectRoleRequest true "Role choice"
// @Success      200 {object} UserResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse
// @Router       /auth/role [put]
func (ac *AuthController) SelectRole(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req SelectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid role payload", validator.ParseError(err))
		return
	}

	currentUser, err := ac.store.GetUser(userID)
	if err != nil {
		log.Printf("user lookup failed: %v", err)
		responses.InternalServerError(c)
		return
	}
	if currentUser == nil {
		responses.NotFound(c, "User")
		return
	}
	if currentUser.Role != "" {
		responses.Conflict(c, "Role has already been chosen")
		return
	}

	currentUser.Role = req.Role
	if err := ac.store.UpdateUser(currentUser); err != nil {
		log.Printf("role update failed: %v", err)
		responses.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, FilterUserRecord(currentUser))
}
