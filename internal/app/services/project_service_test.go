package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yichen/campuswork/internal/app/models"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
)

func newTestProjectService(repo *fakeProjectRepo) ProjectService {
	return NewProjectService(repo, zerolog.Nop())
}

func TestCreateProject(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.knownUsers[1] = true
	repo.knownUsers[2] = true

	svc := newTestProjectService(repo)

	project, err := svc.Create(context.Background(), "Recruitment Site", nil, nil, []int64{1, 2})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if project.Status != models.DefaultProjectStatus {
		t.Errorf("project.Status = %q, want %q", project.Status, models.DefaultProjectStatus)
	}
	if len(project.Assignees) != 2 {
		t.Errorf("len(project.Assignees) = %d, want 2", len(project.Assignees))
	}
}

func TestCreateProjectValidation(t *testing.T) {
	svc := newTestProjectService(newFakeProjectRepo())

	if _, err := svc.Create(context.Background(), "  ", nil, nil, []int64{1}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("blank name error = %v, want ErrValidationFailed", err)
	}

	if _, err := svc.Create(context.Background(), "No Assignees", nil, nil, nil); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("no assignees error = %v, want ErrValidationFailed", err)
	}
}

func TestCreateProjectUnknownAssignee(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.knownUsers[1] = true

	svc := newTestProjectService(repo)

	_, err := svc.Create(context.Background(), "Doomed", nil, nil, []int64{1, 99})
	if !errors.Is(err, apperrors.ErrAssigneeUnknown) {
		t.Errorf("Create error = %v, want ErrAssigneeUnknown", err)
	}
}

func TestUpdateStatusByAssignee(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.knownUsers[1] = true

	svc := newTestProjectService(repo)

	project, err := svc.Create(context.Background(), "Recruitment Site", nil, nil, []int64{1})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	assignee := &models.User{ID: 1, Role: models.RoleStudent}
	updated, err := svc.UpdateStatus(context.Background(), assignee, project.ID, "IN_PROGRESS")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != "IN_PROGRESS" {
		t.Errorf("updated.Status = %q, want IN_PROGRESS", updated.Status)
	}
}

func TestUpdateStatusRejectsUnassignedStudent(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.knownUsers[1] = true

	svc := newTestProjectService(repo)

	project, err := svc.Create(context.Background(), "Recruitment Site", nil, nil, []int64{1})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	outsider := &models.User{ID: 2, Role: models.RoleStudent}
	_, err = svc.UpdateStatus(context.Background(), outsider, project.ID, "DONE")
	if !errors.Is(err, apperrors.ErrNotAssigned) {
		t.Errorf("UpdateStatus error = %v, want ErrNotAssigned", err)
	}
}

func TestUpdateStatusAdminBypassesAssignmentCheck(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.knownUsers[1] = true

	svc := newTestProjectService(repo)

	project, err := svc.Create(context.Background(), "Recruitment Site", nil, nil, []int64{1})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	for _, role := range []models.Role{models.RoleAdmin, models.RoleSuperAdmin} {
		admin := &models.User{ID: 50, Role: role}
		if _, err := svc.UpdateStatus(context.Background(), admin, project.ID, "DONE"); err != nil {
			t.Errorf("UpdateStatus as %s returned error: %v", role, err)
		}
	}
}

func TestUpdateMetaPartial(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.knownUsers[1] = true

	svc := newTestProjectService(repo)

	description := "original description"
	project, err := svc.Create(context.Background(), "Recruitment Site", &description, nil, []int64{1})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	newName := "Recruitment Platform"
	updated, err := svc.UpdateMeta(context.Background(), project.ID, &newName, nil, nil)
	if err != nil {
		t.Fatalf("UpdateMeta returned error: %v", err)
	}

	if updated.Name != newName {
		t.Errorf("updated.Name = %q, want %q", updated.Name, newName)
	}
	if updated.Description == nil || *updated.Description != description {
		t.Error("UpdateMeta cleared a field that was not part of the update")
	}
}

func TestDeleteProject(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.knownUsers[1] = true

	svc := newTestProjectService(repo)

	project, err := svc.Create(context.Background(), "Recruitment Site", nil, nil, []int64{1})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), project.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), project.ID); !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Errorf("project still present after delete, err = %v", err)
	}
}
