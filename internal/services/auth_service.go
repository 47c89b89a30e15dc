// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/models"
	"github.com/minicart/minicart-backend/internal/utils"
)

type AuthService struct {
	db     *gorm.DB
	tokens *utils.JWTManager
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, tokens *utils.JWTManager) *AuthService {
	return &AuthService{
		db:     db,
		tokens: tokens,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req, i18n.KeyAuthFieldsRequired); err != nil {
		return nil, err
	}

	// Check if user already exists
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, newError(ErrConflict, i18n.KeyAuthUserExists)
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		// lost a race with a concurrent registration
		if isDuplicate(err) {
			return nil, newError(ErrConflict, i18n.KeyAuthUserExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a shopper. Admin accounts must use AdminLogin.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(req)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin {
		return nil, newError(ErrUnauthorized, i18n.KeyAuthInvalidCredentials)
	}

	return s.issueToken(user)
}

// AdminLogin authenticates an account that carries the admin flag.
func (s *AuthService) AdminLogin(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(req)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin {
		return nil, newError(ErrUnauthorized, i18n.KeyAdminAccessDenied)
	}

	return s.issueToken(user)
}

func (s *AuthService) authenticate(req *LoginRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req, i18n.KeyAuthCredentialsRequired); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrUnauthorized, i18n.KeyAuthInvalidCredentials)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, newError(ErrUnauthorized, i18n.KeyAuthInvalidCredentials)
	}

	return &user, nil
}

func (s *AuthService) issueToken(user *models.User) (*AuthResponse, error) {
	accessToken, err := s.tokens.GenerateJWT(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.tokens.TTLSeconds(),
	}, nil
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, i18n.KeyUserNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// RequireAdmin resolves the caller and checks the admin flag against the database.
func (s *AuthService) RequireAdmin(userID uint) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrForbidden, i18n.KeyAdminAccessDenied)
		}
		return nil, err
	}
	if !user.IsAdmin {
		return nil, newError(ErrForbidden, i18n.KeyAdminAccessDenied)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
