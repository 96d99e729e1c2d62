package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yichen/campuswork/internal/app/models"
	"github.com/yichen/campuswork/internal/app/repositories"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
)

// DepartmentService defines the interface for department operations
type DepartmentService interface {
	Create(ctx context.Context, name string, parentID *int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, id int64, name string, parentID *int64) (*models.Department, error)
	Delete(ctx context.Context, id int64) error
}

// departmentServiceImpl implements the DepartmentService interface
type departmentServiceImpl struct {
	departmentRepo repositories.IDepartmentRepository
	logger         zerolog.Logger
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo repositories.IDepartmentRepository, logger zerolog.Logger) DepartmentService {
	return &departmentServiceImpl{
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// Create adds a department, optionally under an existing parent.
func (s *departmentServiceImpl) Create(ctx context.Context, name string, parentID *int64) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("department name is required")
	}

	if err := s.checkParent(ctx, parentID); err != nil {
		return nil, err
	}

	department := &models.Department{
		Name:     name,
		ParentID: parentID,
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("departmentID", department.ID).Str("name", department.Name).Msg("Department created")
	return department, nil
}

// GetAll returns every department. This listing is public so the
// registration form can offer the choices.
func (s *departmentServiceImpl) GetAll(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	return departments, nil
}

// Update renames a department and/or moves it under a different parent.
func (s *departmentServiceImpl) Update(ctx context.Context, id int64, name string, parentID *int64) (*models.Department, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid department ID")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("department name is required")
	}

	if parentID != nil && *parentID == id {
		return nil, apperrors.NewValidationError("department cannot be its own parent")
	}

	if err := s.checkParent(ctx, parentID); err != nil {
		return nil, err
	}

	department := &models.Department{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("departmentID", id).Str("name", name).Msg("Department updated")
	return department, nil
}

// Delete removes a department. Departments with child departments or with
// users still attached are refused.
func (s *departmentServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid department ID")
	}

	hasChildren, err := s.departmentRepo.HasChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking child departments: %w", err)
	}
	if hasChildren {
		return apperrors.NewConflictError("department has child departments")
	}

	hasUsers, err := s.departmentRepo.HasUsers(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking department members: %w", err)
	}
	if hasUsers {
		return apperrors.NewConflictError("department still has members")
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("departmentID", id).Msg("Department deleted")
	return nil
}

func (s *departmentServiceImpl) checkParent(ctx context.Context, parentID *int64) error {
	if parentID == nil {
		return nil
	}

	if _, err := s.departmentRepo.GetByID(ctx, *parentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return apperrors.NewValidationError("parent department does not exist")
		}
		return fmt.Errorf("error checking parent department: %w", err)
	}

	return nil
}
