package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/internal/revocation"
	"shop_backoffice/pkg/utils"
)

const lastLoginTimeout = 5 * time.Second

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required,max=20"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginResult is returned to the client on successful login.
type LoginResult struct {
	Token     string       `json:"token"`
	User      *models.User `json:"user"`
	ExpiresAt time.Time    `json:"-"`
}

// UpdateProfileRequest DTO. Role, phone and activation are not editable here.
type UpdateProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	Password  *string `json:"password" binding:"omitempty,min=6,max=72"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url,max=500"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*models.User, error)
}

type authService struct {
	users         repositories.UserRepository
	tokens        *utils.TokenManager
	revoked       revocation.Store
	checkPassword func(password, hash string) bool
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(users repositories.UserRepository, tokens *utils.TokenManager, revoked revocation.Store) AuthService {
	return &authService{users: users, tokens: tokens, revoked: revoked, checkPassword: utils.CheckPassword}
}

// Login checks the phone and password of an active account and issues a token.
// Unknown phone, wrong password and deactivated account are indistinguishable.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.FindActiveByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.checkPassword(req.Password, utils.UnknownUserHash())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if !s.checkPassword(req.Password, user.PasswordHash) || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Phone, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	go s.recordLogin(user.ID)

	return &LoginResult{Token: token, User: user, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// recordLogin runs detached from the request; failure is only logged.
func (s *authService) recordLogin(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), lastLoginTimeout)
	defer cancel()
	if err := s.users.TouchLastLogin(ctx, userID); err != nil {
		utils.LogWarn(err, "Login: failed to update last login for user "+utils.Int64ToStr(userID))
	}
}

// Logout revokes the token id until the token would have expired.
// An absent or invalid token is not an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*models.User, error) {
	if req.Name == nil && req.Password == nil && req.AvatarURL == nil {
		return nil, errEmptyUpdate
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := utils.TrimPtr(req.Name)
		if name == nil {
			return nil, newValidationError("name", "must not be blank")
		}
		user.Name = *name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = utils.TrimPtr(req.AvatarURL)
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
