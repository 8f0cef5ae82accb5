package services

import (
	"context"
	"errors"
	"log"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/adapters/persistence/repositories"
	"linka-backend/internal/pkg/pagination"
)

// User administration errors
var (
	ErrInvalidUserType   = errors.New("invalid user type")
	ErrInvalidUserStatus = errors.New("invalid status transition")
)

// UserService handles user administration
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List lists users with optional search
func (s *UserService) List(ctx context.Context, search string, params *pagination.Params) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, search, params.Offset, params.Size)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, total, nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user.ToResponse(), nil
}

// Suspend suspends a user account
func (s *UserService) Suspend(ctx context.Context, id uint) (*models.UserResponse, error) {
	return s.setStatus(ctx, id, models.UserStatusSuspended)
}

// Ban bans a user account
func (s *UserService) Ban(ctx context.Context, id uint) (*models.UserResponse, error) {
	return s.setStatus(ctx, id, models.UserStatusBanned)
}

// Deactivate deactivates a user account
func (s *UserService) Deactivate(ctx context.Context, id uint) (*models.UserResponse, error) {
	return s.setStatus(ctx, id, models.UserStatusDeactivated)
}

// Activate reactivates a user account, clearing any lockout with it
func (s *UserService) Activate(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.Status == models.UserStatusActive {
		return nil, ErrInvalidUserStatus
	}

	user.Status = models.UserStatusActive
	user.Unlock()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User %d reactivated", user.ID)
	return user.ToResponse(), nil
}

// setStatus applies a status change to a user
func (s *UserService) setStatus(ctx context.Context, id uint, status string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.Status == status {
		return nil, ErrInvalidUserStatus
	}

	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User %d status changed to %s", user.ID, status)
	return user.ToResponse(), nil
}

// Unlock clears a user's lockout counters ahead of expiry
func (s *UserService) Unlock(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.Unlock()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User %d unlocked", user.ID)
	return user.ToResponse(), nil
}

// SetUserType changes a user's marketplace role
func (s *UserService) SetUserType(ctx context.Context, id uint, userType string) (*models.UserResponse, error) {
	switch userType {
	case models.UserTypeBuyer, models.UserTypeSeller, models.UserTypeBoth, models.UserTypeAdmin:
	default:
		return nil, ErrInvalidUserType
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.UserType = userType
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User %d type changed to %s", user.ID, userType)
	return user.ToResponse(), nil
}
