package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
)

func TestCreateDepartment(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := NewDepartmentService(repo, zerolog.Nop())

	department, err := svc.Create(context.Background(), "  Tech Department  ", nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if department.Name != "Tech Department" {
		t.Errorf("department.Name = %q, want trimmed name", department.Name)
	}
	if department.ID == 0 {
		t.Error("Create did not assign an ID")
	}
}

func TestCreateDepartmentUnderParent(t *testing.T) {
	repo := newFakeDepartmentRepo()
	parent := repo.add("Tech", nil)

	svc := NewDepartmentService(repo, zerolog.Nop())

	department, err := svc.Create(context.Background(), "Backend Group", &parent.ID)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if department.ParentID == nil || *department.ParentID != parent.ID {
		t.Errorf("department.ParentID = %v, want %d", department.ParentID, parent.ID)
	}
}

func TestCreateDepartmentValidation(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := NewDepartmentService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "   ", nil); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("blank name error = %v, want ErrValidationFailed", err)
	}

	missing := int64(42)
	if _, err := svc.Create(context.Background(), "Orphan", &missing); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("unknown parent error = %v, want ErrValidationFailed", err)
	}
}

func TestUpdateDepartmentCannotBeOwnParent(t *testing.T) {
	repo := newFakeDepartmentRepo()
	department := repo.add("Tech", nil)

	svc := NewDepartmentService(repo, zerolog.Nop())

	_, err := svc.Update(context.Background(), department.ID, "Tech", &department.ID)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("Update error = %v, want ErrValidationFailed", err)
	}
}

func TestDeleteDepartmentGuards(t *testing.T) {
	repo := newFakeDepartmentRepo()
	parent := repo.add("Tech", nil)
	repo.add("Backend Group", &parent.ID)

	svc := NewDepartmentService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), parent.ID); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("delete with children error = %v, want ErrConflict", err)
	}

	occupied := repo.add("Design", nil)
	repo.members[occupied.ID] = true

	if err := svc.Delete(context.Background(), occupied.ID); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("delete with members error = %v, want ErrConflict", err)
	}
}

func TestDeleteEmptyDepartment(t *testing.T) {
	repo := newFakeDepartmentRepo()
	department := repo.add("Empty", nil)

	svc := NewDepartmentService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), department.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), department.ID); !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		t.Errorf("department still present after delete, err = %v", err)
	}
}

func TestDeleteUnknownDepartment(t *testing.T) {
	svc := NewDepartmentService(newFakeDepartmentRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), 404); !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		t.Errorf("Delete error = %v, want ErrDepartmentNotFound", err)
	}
}
