package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yichen/campuswork/internal/app/models"
	"github.com/yichen/campuswork/internal/app/models/dto"
	"github.com/yichen/campuswork/internal/app/repositories"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
	"github.com/yichen/campuswork/internal/pkg/auth"
)

// AuthService defines the interface for registration and login
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo       repositories.IUserRepository
	departmentRepo repositories.IDepartmentRepository
	jwtService     *auth.JWTService
	logger         zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo repositories.IUserRepository,
	departmentRepo repositories.IDepartmentRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		jwtService:     jwtService,
		logger:         logger,
	}
}

// Register creates a new unapproved user. The student number must be unused
// and the department must exist.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	exists, err := s.userRepo.StudentIDExists(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error checking if student ID exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrStudentIDAlreadyExists
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return nil, apperrors.NewValidationError("department does not exist")
		}
		return nil, fmt.Errorf("error checking department: %w", err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		StudentID:    req.StudentID,
		Name:         req.Name,
		Password:     hashedPassword,
		College:      req.College,
		Major:        req.Major,
		Grade:        req.Grade,
		Position:     req.Position,
		Email:        req.Email,
		Role:         models.RoleStudent,
		IsApproved:   false,
		DepartmentID: req.DepartmentID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("studentId", user.StudentID).
		Int64("userID", user.ID).
		Msg("User registered, awaiting approval")

	// Hash never leaves the service
	user.Password = ""
	return user, nil
}

// Login verifies credentials and the approval gate, then issues a token.
// Unknown student numbers and wrong passwords are indistinguishable to the
// caller so accounts cannot be enumerated.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	user, err := s.userRepo.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error retrieving user for login: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return "", apperrors.ErrInvalidCredentials
	}

	if !user.IsApproved {
		return "", apperrors.ErrPendingApproval
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().
		Str("studentId", user.StudentID).
		Int64("userID", user.ID).
		Msg("User logged in")

	return token, nil
}
