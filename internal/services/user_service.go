package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/pkg/utils"
)

// CreateUserRequest DTO
type CreateUserRequest struct {
	Phone     string      `json:"phone" binding:"required,min=6,max=20"`
	Password  string      `json:"password" binding:"required,min=6,max=72"`
	Name      string      `json:"name" binding:"required,max=100"`
	Role      models.Role `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN SHOP_AGENT WAREHOUSE_AGENT CONFIRMER"`
	AvatarURL *string     `json:"avatarUrl" binding:"omitempty,url,max=500"`
}

// UpdateUserRequest DTO; only provided fields change.
type UpdateUserRequest struct {
	Name      *string      `json:"name" binding:"omitempty,min=1,max=100"`
	Role      *models.Role `json:"role" binding:"omitempty,oneof=SUPER_ADMIN ADMIN SHOP_AGENT WAREHOUSE_AGENT CONFIRMER"`
	IsActive  *bool        `json:"isActive"`
	Password  *string      `json:"password" binding:"omitempty,min=6,max=72"`
	AvatarURL *string      `json:"avatarUrl" binding:"omitempty,url,max=500"`
}

// UserService manages back-office accounts.
type UserService interface {
	ListUsers(ctx context.Context, filters models.UserFilters) ([]models.User, int, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, actorID, id int64, req UpdateUserRequest) (*models.User, error)
	DeactivateUser(ctx context.Context, actorID, id int64) (*models.User, error)
}

type userService struct {
	users repositories.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) ListUsers(ctx context.Context, filters models.UserFilters) ([]models.User, int, error) {
	users, total, err := s.users.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		AvatarURL:    utils.TrimPtr(req.AvatarURL),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapUserWriteError(err)
	}
	return user, nil
}

// UpdateUser applies a partial update. Accounts cannot deactivate themselves
// or change their own role.
func (s *userService) UpdateUser(ctx context.Context, actorID, id int64, req UpdateUserRequest) (*models.User, error) {
	if req.Name == nil && req.Role == nil && req.IsActive == nil && req.Password == nil && req.AvatarURL == nil {
		return nil, errEmptyUpdate
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID == id {
		if req.IsActive != nil && !*req.IsActive {
			return nil, newValidationError("isActive", "you cannot deactivate your own account")
		}
		if req.Role != nil && *req.Role != user.Role {
			return nil, newValidationError("role", "you cannot change your own role")
		}
	}

	if req.Name != nil {
		name := utils.TrimPtr(req.Name)
		if name == nil {
			return nil, newValidationError("name", "must not be blank")
		}
		user.Name = *name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
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
		return nil, mapUserWriteError(err)
	}
	return user, nil
}

// DeactivateUser soft-deletes an account. Accounts cannot deactivate themselves.
func (s *userService) DeactivateUser(ctx context.Context, actorID, id int64) (*models.User, error) {
	if actorID == id {
		return nil, newValidationError("id", "you cannot deactivate your own account")
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = false
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to deactivate user: %w", err)
	}
	return user, nil
}

func (s *userService) find(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// mapUserWriteError turns the active-phone unique index into a field error.
func mapUserWriteError(err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return newValidationError("phone", "is already used by an active account")
	}
	return fmt.Errorf("failed to save user: %w", err)
}
