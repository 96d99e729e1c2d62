// Package seed creates the default data the application needs on first start:
// a root department and a bootstrap super admin account.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/yichen/campuswork/internal/app/models"
	"github.com/yichen/campuswork/internal/app/repositories"
	"github.com/yichen/campuswork/internal/config"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
	"github.com/yichen/campuswork/internal/pkg/auth"
)

const rootDepartmentName = "General Office"

// CreateDefaultData seeds the root department and the super admin account.
// It is idempotent and safe to run on every startup.
func CreateDefaultData(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(pool)

	rootID, err := ensureRootDepartment(ctx, repos.DepartmentRepository, lgr)
	if err != nil {
		return err
	}

	return ensureSuperAdmin(ctx, repos.UserRepository, cfg, rootID, lgr)
}

// ensureRootDepartment returns the ID of the first existing department,
// creating one when the table is empty.
func ensureRootDepartment(ctx context.Context, departmentRepo repositories.IDepartmentRepository, lgr zerolog.Logger) (int64, error) {
	departments, err := departmentRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list departments during seeding: %w", err)
	}

	if len(departments) > 0 {
		return departments[0].ID, nil
	}

	department := &models.Department{Name: rootDepartmentName}
	if err := departmentRepo.Create(ctx, department); err != nil {
		return 0, fmt.Errorf("failed to create root department: %w", err)
	}

	lgr.Info().Int64("departmentID", department.ID).Str("name", department.Name).Msg("Seeded root department")
	return department.ID, nil
}

// ensureSuperAdmin creates the bootstrap super admin unless the configured
// student ID is already taken.
func ensureSuperAdmin(ctx context.Context, userRepo repositories.IUserRepository, cfg *config.Config, departmentID int64, lgr zerolog.Logger) error {
	exists, err := userRepo.StudentIDExists(ctx, cfg.Seed.AdminStudentID)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin account: %w", err)
	}
	if exists {
		return nil
	}

	hashedPassword, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		StudentID:    cfg.Seed.AdminStudentID,
		Name:         "Administrator",
		Password:     hashedPassword,
		College:      "-",
		Major:        "-",
		Grade:        "-",
		Position:     "administrator",
		Role:         models.RoleSuperAdmin,
		IsApproved:   true,
		DepartmentID: departmentID,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		// Lost a race against a concurrent seeder; the account exists
		if errors.Is(err, apperrors.ErrStudentIDAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	lgr.Info().Str("studentId", admin.StudentID).Msg("Seeded super admin account")
	if cfg.Seed.AdminPassword == "admin123" {
		lgr.Warn().Msg("Super admin account uses the default password, set SEED_ADMIN_PASSWORD")
	}
	return nil
}
