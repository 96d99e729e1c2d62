package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yichen/campuswork/internal/app/models"
	"github.com/yichen/campuswork/internal/db"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
	"github.com/yichen/campuswork/internal/pkg/dberrors"
)

// IProjectRepository defines the interface for project database operations
type IProjectRepository interface {
	CreateWithAssignments(ctx context.Context, project *models.Project, userIDs []int64) error
	GetAll(ctx context.Context) ([]*models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	HasAssignment(ctx context.Context, userID, projectID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Project, error)
	UpdateMeta(ctx context.Context, id int64, name, description *string, deadline *time.Time) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

// ProjectRepository handles database operations for projects and their
// assignment records.
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// CreateWithAssignments inserts the project and one assignment row per user in
// a single transaction, then loads the assignee projections.
func (r *ProjectRepository) CreateWithAssignments(ctx context.Context, project *models.Project, userIDs []int64) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO projects (name, description, deadline)
			VALUES ($1, $2, $3)
			RETURNING id, status, created_at
		`

		err := tx.QueryRow(ctx, query, project.Name, project.Description, project.Deadline).
			Scan(&project.ID, &project.Status, &project.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}

		for _, userID := range userIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO project_assignments (user_id, project_id) VALUES ($1, $2)`,
				userID, project.ID)
			if err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrAssigneeUnknown
				}
				if dberrors.IsUniqueViolation(err) {
					// Duplicate ids in the request collapse to one assignment
					continue
				}
				return fmt.Errorf("error creating project assignment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return r.attachAssignees(ctx, []*models.Project{project})
}

// GetAll retrieves all projects with their assignees, newest first.
func (r *ProjectRepository) GetAll(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT id, name, description, deadline, status, created_at
		FROM projects
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var project models.Project
		if err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.Deadline,
			&project.Status,
			&project.CreatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, &project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachAssignees(ctx, projects); err != nil {
		return nil, err
	}

	return projects, nil
}

// GetByID retrieves a single project with its assignees.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := `
		SELECT id, name, description, deadline, status, created_at
		FROM projects
		WHERE id = $1
	`

	var project models.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Deadline,
		&project.Status,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}

	if err := r.attachAssignees(ctx, []*models.Project{&project}); err != nil {
		return nil, err
	}

	return &project, nil
}

// HasAssignment checks whether the user holds an assignment to the project.
func (r *ProjectRepository) HasAssignment(ctx context.Context, userID, projectID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM project_assignments WHERE user_id = $1 AND project_id = $2)`,
		userID, projectID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking project assignment: %w", err)
	}
	return exists, nil
}

// UpdateStatus sets the status field and returns the updated project.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Project, error) {
	query := `
		UPDATE projects SET status = $1
		WHERE id = $2
		RETURNING id, name, description, deadline, status, created_at
	`

	var project models.Project
	err := r.db.QueryRow(ctx, query, status, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Deadline,
		&project.Status,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("error updating project status: %w", err)
	}

	if err := r.attachAssignees(ctx, []*models.Project{&project}); err != nil {
		return nil, err
	}

	return &project, nil
}

// UpdateMeta applies a partial update of name, description and deadline.
// Nil fields are left untouched, so an omitted deadline is not cleared.
func (r *ProjectRepository) UpdateMeta(ctx context.Context, id int64, name, description *string, deadline *time.Time) (*models.Project, error) {
	setClauses := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	if name != nil {
		args = append(args, *name)
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", len(args)))
	}
	if description != nil {
		args = append(args, *description)
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", len(args)))
	}
	if deadline != nil {
		args = append(args, *deadline)
		setClauses = append(setClauses, fmt.Sprintf("deadline = $%d", len(args)))
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE projects SET %s
		WHERE id = $%d
		RETURNING id, name, description, deadline, status, created_at
	`, strings.Join(setClauses, ", "), len(args))

	var project models.Project
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Deadline,
		&project.Status,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("error updating project: %w", err)
	}

	if err := r.attachAssignees(ctx, []*models.Project{&project}); err != nil {
		return nil, err
	}

	return &project, nil
}

// Delete removes the project's assignment records and then the project itself
// in a single transaction.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM project_assignments WHERE project_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting project assignments: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting project: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrProjectNotFound
		}

		return nil
	})
}

// attachAssignees loads the assignee projections for the given projects with
// one query and fills the Assignees slices.
func (r *ProjectRepository) attachAssignees(ctx context.Context, projects []*models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(projects))
	byID := make(map[int64]*models.Project, len(projects))
	for _, project := range projects {
		project.Assignees = make([]models.Assignee, 0)
		ids = append(ids, project.ID)
		byID[project.ID] = project
	}

	query := `
		SELECT pa.project_id, u.id, u.name, u.email
		FROM project_assignments pa
		JOIN users u ON pa.user_id = u.id
		WHERE pa.project_id = ANY($1)
		ORDER BY u.name ASC
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error loading project assignees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID int64
		var assignee models.Assignee
		if err := rows.Scan(&projectID, &assignee.ID, &assignee.Name, &assignee.Email); err != nil {
			return err
		}
		if project, ok := byID[projectID]; ok {
			project.Assignees = append(project.Assignees, assignee)
		}
	}

	return rows.Err()
}
