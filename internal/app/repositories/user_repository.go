package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yichen/campuswork/internal/app/models"
	"github.com/yichen/campuswork/internal/db"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
	"github.com/yichen/campuswork/internal/pkg/dberrors"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.User, error)
	StudentIDExists(ctx context.Context, studentID string) (bool, error)
	ListPending(ctx context.Context) ([]*models.User, error)
	ListApproved(ctx context.Context) ([]*models.User, error)
	Approve(ctx context.Context, id int64) (*models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// userColumns is the safe projection used everywhere except login.
const userColumns = `id, student_id, name, college, major, grade, position, email, role, is_approved, department_id, created_at, updated_at`

// Create inserts a new user. The caller provides the hashed password; the
// generated id and timestamps are written back into the model.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (student_id, name, password, college, major, grade, position, email, role, is_approved, department_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.StudentID,
		user.Name,
		user.Password,
		user.College,
		user.Major,
		user.Grade,
		user.Position,
		user.Email,
		user.Role,
		user.IsApproved,
		user.DepartmentID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueConstraintError(err, "users_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID without the password field.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByStudentID retrieves a user by student number including the password
// hash. Only the login flow should use this.
func (r *UserRepository) GetByStudentID(ctx context.Context, studentID string) (*models.User, error) {
	query := `SELECT ` + userColumns + `, password FROM users WHERE student_id = $1`

	var user models.User
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&user.ID,
		&user.StudentID,
		&user.Name,
		&user.College,
		&user.Major,
		&user.Grade,
		&user.Position,
		&user.Email,
		&user.Role,
		&user.IsApproved,
		&user.DepartmentID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by student ID: %w", err)
	}

	return &user, nil
}

// StudentIDExists checks whether a student number is already registered.
func (r *UserRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student ID existence: %w", err)
	}
	return exists, nil
}

// ListPending retrieves unapproved users with department and parent department
// names attached.
func (r *UserRepository) ListPending(ctx context.Context) ([]*models.User, error) {
	return r.listByApproval(ctx, false)
}

// ListApproved retrieves approved users, newest first, with department and
// parent department names attached.
func (r *UserRepository) ListApproved(ctx context.Context) ([]*models.User, error) {
	return r.listByApproval(ctx, true)
}

func (r *UserRepository) listByApproval(ctx context.Context, approved bool) ([]*models.User, error) {
	query := `
		SELECT u.id, u.student_id, u.name, u.college, u.major, u.grade, u.position, u.email,
		       u.role, u.is_approved, u.department_id, u.created_at, u.updated_at,
		       d.id, d.name, d.parent_id, p.name
		FROM users u
		JOIN departments d ON u.department_id = d.id
		LEFT JOIN departments p ON d.parent_id = p.id
		WHERE u.is_approved = $1
		ORDER BY u.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, approved)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		var dept models.Department
		var parentName *string

		if err := rows.Scan(
			&user.ID,
			&user.StudentID,
			&user.Name,
			&user.College,
			&user.Major,
			&user.Grade,
			&user.Position,
			&user.Email,
			&user.Role,
			&user.IsApproved,
			&user.DepartmentID,
			&user.CreatedAt,
			&user.UpdatedAt,
			&dept.ID,
			&dept.Name,
			&dept.ParentID,
			&parentName,
		); err != nil {
			return nil, err
		}

		if parentName != nil && dept.ParentID != nil {
			dept.Parent = &models.Department{ID: *dept.ParentID, Name: *parentName}
		}
		user.Department = &dept
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Approve flips the approval flag and returns the updated user.
func (r *UserRepository) Approve(ctx context.Context, id int64) (*models.User, error) {
	query := `
		UPDATE users SET is_approved = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error approving user: %w", err)
	}

	return user, nil
}

// UpdateRole changes a user's role and returns the updated user.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	query := `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, role, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating user role: %w", err)
	}

	return user, nil
}

// Delete removes the user's project assignments and then the user itself in a
// single transaction.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM project_assignments WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting user assignments: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}

		return nil
	})
}

// scanUser scans the safe user projection from a single row.
func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.StudentID,
		&user.Name,
		&user.College,
		&user.Major,
		&user.Grade,
		&user.Position,
		&user.Email,
		&user.Role,
		&user.IsApproved,
		&user.DepartmentID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
