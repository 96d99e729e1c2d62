package services

import (
	"context"
	"time"

	"github.com/yichen/campuswork/internal/app/models"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
)

// In-memory repository fakes used by the service tests.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.StudentID == user.StudentID {
			return apperrors.ErrStudentIDAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *user
	clone.Password = ""
	return &clone, nil
}

func (f *fakeUserRepo) GetByStudentID(_ context.Context, studentID string) (*models.User, error) {
	for _, user := range f.users {
		if user.StudentID == studentID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) StudentIDExists(_ context.Context, studentID string) (bool, error) {
	for _, user := range f.users {
		if user.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ListPending(_ context.Context) ([]*models.User, error) {
	return f.listByApproval(false), nil
}

func (f *fakeUserRepo) ListApproved(_ context.Context) ([]*models.User, error) {
	return f.listByApproval(true), nil
}

func (f *fakeUserRepo) listByApproval(approved bool) []*models.User {
	result := make([]*models.User, 0)
	for _, user := range f.users {
		if user.IsApproved == approved {
			clone := *user
			clone.Password = ""
			result = append(result, &clone)
		}
	}
	return result
}

func (f *fakeUserRepo) Approve(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	user.IsApproved = true
	clone := *user
	clone.Password = ""
	return &clone, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id int64, role models.Role) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	user.Role = role
	clone := *user
	clone.Password = ""
	return &clone, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeDepartmentRepo struct {
	departments map[int64]*models.Department
	nextID      int64
	children    map[int64]bool
	members     map[int64]bool
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{
		departments: make(map[int64]*models.Department),
		nextID:      1,
		children:    make(map[int64]bool),
		members:     make(map[int64]bool),
	}
}

func (f *fakeDepartmentRepo) add(name string, parentID *int64) *models.Department {
	department := &models.Department{ID: f.nextID, Name: name, ParentID: parentID}
	f.departments[department.ID] = department
	f.nextID++
	if parentID != nil {
		f.children[*parentID] = true
	}
	return department
}

func (f *fakeDepartmentRepo) Create(_ context.Context, department *models.Department) error {
	created := f.add(department.Name, department.ParentID)
	department.ID = created.ID
	return nil
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id int64) (*models.Department, error) {
	department, ok := f.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	clone := *department
	return &clone, nil
}

func (f *fakeDepartmentRepo) GetAll(_ context.Context) ([]*models.Department, error) {
	result := make([]*models.Department, 0, len(f.departments))
	for _, department := range f.departments {
		clone := *department
		result = append(result, &clone)
	}
	return result, nil
}

func (f *fakeDepartmentRepo) Update(_ context.Context, department *models.Department) error {
	existing, ok := f.departments[department.ID]
	if !ok {
		return apperrors.ErrDepartmentNotFound
	}
	existing.Name = department.Name
	existing.ParentID = department.ParentID
	return nil
}

func (f *fakeDepartmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.departments[id]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	delete(f.departments, id)
	return nil
}

func (f *fakeDepartmentRepo) HasChildren(_ context.Context, id int64) (bool, error) {
	return f.children[id], nil
}

func (f *fakeDepartmentRepo) HasUsers(_ context.Context, id int64) (bool, error) {
	return f.members[id], nil
}

type fakeProjectRepo struct {
	projects    map[int64]*models.Project
	assignments map[int64][]int64 // project ID -> user IDs
	knownUsers  map[int64]bool
	nextID      int64
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects:    make(map[int64]*models.Project),
		assignments: make(map[int64][]int64),
		knownUsers:  make(map[int64]bool),
		nextID:      1,
	}
}

func (f *fakeProjectRepo) CreateWithAssignments(_ context.Context, project *models.Project, userIDs []int64) error {
	for _, userID := range userIDs {
		if !f.knownUsers[userID] {
			return apperrors.ErrAssigneeUnknown
		}
	}

	project.ID = f.nextID
	f.nextID++
	project.Status = models.DefaultProjectStatus
	project.CreatedAt = time.Now()
	project.Assignees = make([]models.Assignee, 0, len(userIDs))

	seen := make(map[int64]bool)
	for _, userID := range userIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true
		f.assignments[project.ID] = append(f.assignments[project.ID], userID)
		project.Assignees = append(project.Assignees, models.Assignee{ID: userID})
	}

	clone := *project
	f.projects[project.ID] = &clone
	return nil
}

func (f *fakeProjectRepo) GetAll(_ context.Context) ([]*models.Project, error) {
	result := make([]*models.Project, 0, len(f.projects))
	for _, project := range f.projects {
		clone := *project
		result = append(result, &clone)
	}
	return result, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id int64) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	clone := *project
	return &clone, nil
}

func (f *fakeProjectRepo) HasAssignment(_ context.Context, userID, projectID int64) (bool, error) {
	for _, assigned := range f.assignments[projectID] {
		if assigned == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProjectRepo) UpdateStatus(_ context.Context, id int64, status string) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	project.Status = status
	clone := *project
	return &clone, nil
}

func (f *fakeProjectRepo) UpdateMeta(_ context.Context, id int64, name, description *string, deadline *time.Time) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	if name != nil {
		project.Name = *name
	}
	if description != nil {
		project.Description = description
	}
	if deadline != nil {
		project.Deadline = deadline
	}
	clone := *project
	return &clone, nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.projects[id]; !ok {
		return apperrors.ErrProjectNotFound
	}
	delete(f.projects, id)
	delete(f.assignments, id)
	return nil
}
