package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yichen/campuswork/internal/app/models"
	"github.com/yichen/campuswork/internal/app/repositories"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
)

// UserService defines the interface for user administration
type UserService interface {
	ListPending(ctx context.Context) ([]*models.User, error)
	ListApproved(ctx context.Context) ([]*models.User, error)
	Approve(ctx context.Context, id int64) (*models.User, error)
	ChangeRole(ctx context.Context, id int64, role models.Role) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListPending returns users awaiting approval.
func (s *userServiceImpl) ListPending(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing pending users: %w", err)
	}
	return users, nil
}

// ListApproved returns approved users, newest first.
func (s *userServiceImpl) ListApproved(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing approved users: %w", err)
	}
	return users, nil
}

// Approve marks a user as approved so they can log in.
func (s *userServiceImpl) Approve(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid user ID")
	}

	user, err := s.userRepo.Approve(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("studentId", user.StudentID).Msg("User approved")
	return user, nil
}

// ChangeRole updates a user's role after validating it against the enumeration.
func (s *userServiceImpl) ChangeRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid user ID")
	}

	if !role.IsValid() {
		return nil, apperrors.NewValidationError("invalid role value")
	}

	user, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User role changed")
	return user, nil
}

// Delete removes a user together with their project assignments.
func (s *userServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid user ID")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", id).Msg("User deleted")
	return nil
}
