package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yichen/campuswork/internal/app/models"
	"github.com/yichen/campuswork/internal/app/repositories"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
)

// ProjectService defines the interface for project operations
type ProjectService interface {
	Create(ctx context.Context, name string, description *string, deadline *time.Time, assignedUserIDs []int64) (*models.Project, error)
	GetAll(ctx context.Context) ([]*models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	UpdateStatus(ctx context.Context, actor *models.User, projectID int64, status string) (*models.Project, error)
	UpdateMeta(ctx context.Context, id int64, name, description *string, deadline *time.Time) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	projectRepo repositories.IProjectRepository
	logger      zerolog.Logger
}

// NewProjectService creates a new project service instance
func NewProjectService(projectRepo repositories.IProjectRepository, logger zerolog.Logger) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Create creates a project and assigns it to the given users atomically.
// A project always starts with at least one assignee.
func (s *projectServiceImpl) Create(ctx context.Context, name string, description *string, deadline *time.Time, assignedUserIDs []int64) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("project name is required")
	}
	if len(assignedUserIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one assigned user is required")
	}

	project := &models.Project{
		Name:        name,
		Description: description,
		Deadline:    deadline,
	}

	if err := s.projectRepo.CreateWithAssignments(ctx, project, assignedUserIDs); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("projectID", project.ID).
		Int("assignees", len(project.Assignees)).
		Msg("Project created")

	return project, nil
}

// GetAll retrieves all projects with their assignees.
func (s *projectServiceImpl) GetAll(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.projectRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	return projects, nil
}

// GetByID retrieves a single project with its assignees.
func (s *projectServiceImpl) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid project ID")
	}
	return s.projectRepo.GetByID(ctx, id)
}

// UpdateStatus changes a project's status. Only users holding an assignment
// to the project may do so; administrative roles bypass the check.
func (s *projectServiceImpl) UpdateStatus(ctx context.Context, actor *models.User, projectID int64, status string) (*models.Project, error) {
	if projectID <= 0 {
		return nil, apperrors.NewValidationError("invalid project ID")
	}

	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperrors.NewValidationError("status is required")
	}

	if !actor.Role.IsAdministrative() {
		assigned, err := s.projectRepo.HasAssignment(ctx, actor.ID, projectID)
		if err != nil {
			return nil, fmt.Errorf("error checking project assignment: %w", err)
		}
		if !assigned {
			return nil, apperrors.ErrNotAssigned
		}
	}

	project, err := s.projectRepo.UpdateStatus(ctx, projectID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("projectID", projectID).
		Int64("userID", actor.ID).
		Str("status", status).
		Msg("Project status updated")

	return project, nil
}

// UpdateMeta applies a partial update of the project's descriptive fields.
// Fields left nil are not touched.
func (s *projectServiceImpl) UpdateMeta(ctx context.Context, id int64, name, description *string, deadline *time.Time) (*models.Project, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid project ID")
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("project name cannot be empty")
		}
		name = &trimmed
	}

	project, err := s.projectRepo.UpdateMeta(ctx, id, name, description, deadline)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("projectID", id).Msg("Project updated")
	return project, nil
}

// Delete removes a project and its assignment records.
func (s *projectServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid project ID")
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("projectID", id).Msg("Project deleted")
	return nil
}
