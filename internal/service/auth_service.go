package service

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/TanzilStore/store_api/internal/models"
	"github.com/TanzilStore/store_api/internal/repository"
	"github.com/TanzilStore/store_api/internal/utils"
)

// AuthService authenticates dashboard administrators and issues tokens.
type AuthService struct {
	userRepo *repository.UserRepository
}

// NewAuthService constructs a new AuthService.
func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// LoginResult is the payload returned on a successful login.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login verifies the credentials and returns a signed token. Only active
// admin accounts may sign in; the credential error is deliberately the
// same for an unknown email and a wrong password.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, utils.ErrAccountInactive
	}
	if user.Role != models.RoleAdmin {
		return nil, utils.ErrNotAdmin
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		// Login still succeeds; the timestamp is informational
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	return &LoginResult{Token: token, User: user}, nil
}
