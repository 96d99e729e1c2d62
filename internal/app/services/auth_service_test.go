package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yichen/campuswork/internal/app/models"
	"github.com/yichen/campuswork/internal/app/models/dto"
	"github.com/yichen/campuswork/internal/pkg/apperrors"
	"github.com/yichen/campuswork/internal/pkg/auth"
)

func newTestAuthService(userRepo *fakeUserRepo, departmentRepo *fakeDepartmentRepo) AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "campuswork.test",
	})
	return NewAuthService(userRepo, departmentRepo, jwtService, zerolog.Nop())
}

func registerRequest(departmentID int64) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		StudentID:    "20230001",
		Name:         "Li Hua",
		Password:     "secret123",
		College:      "School of Computing",
		Major:        "Software Engineering",
		Grade:        "2023",
		Position:     "member",
		DepartmentID: departmentID,
	}
}

func TestRegisterCreatesUnapprovedStudent(t *testing.T) {
	userRepo := newFakeUserRepo()
	departmentRepo := newFakeDepartmentRepo()
	department := departmentRepo.add("Tech", nil)

	svc := newTestAuthService(userRepo, departmentRepo)

	user, err := svc.Register(context.Background(), registerRequest(department.ID))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if user.ID == 0 {
		t.Error("Register did not assign an ID")
	}
	if user.IsApproved {
		t.Error("new registration must not be approved")
	}
	if user.Role != models.RoleStudent {
		t.Errorf("user.Role = %q, want %q", user.Role, models.RoleStudent)
	}
	if user.Password != "" {
		t.Error("Register leaked the password hash")
	}

	stored, err := userRepo.GetByStudentID(context.Background(), "20230001")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.Password == "secret123" || stored.Password == "" {
		t.Error("stored password is not hashed")
	}
}

func TestRegisterDuplicateStudentID(t *testing.T) {
	userRepo := newFakeUserRepo()
	departmentRepo := newFakeDepartmentRepo()
	department := departmentRepo.add("Tech", nil)

	svc := newTestAuthService(userRepo, departmentRepo)

	if _, err := svc.Register(context.Background(), registerRequest(department.ID)); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	_, err := svc.Register(context.Background(), registerRequest(department.ID))
	if !errors.Is(err, apperrors.ErrStudentIDAlreadyExists) {
		t.Errorf("second Register error = %v, want ErrStudentIDAlreadyExists", err)
	}
}

func TestRegisterUnknownDepartment(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeDepartmentRepo())

	_, err := svc.Register(context.Background(), registerRequest(99))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("Register error = %v, want ErrValidationFailed", err)
	}
}

func TestLoginHappyPath(t *testing.T) {
	userRepo := newFakeUserRepo()
	departmentRepo := newFakeDepartmentRepo()
	department := departmentRepo.add("Tech", nil)

	svc := newTestAuthService(userRepo, departmentRepo)

	user, err := svc.Register(context.Background(), registerRequest(department.ID))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := userRepo.Approve(context.Background(), user.ID); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	token, err := svc.Login(context.Background(), &dto.LoginRequest{StudentID: "20230001", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Error("Login returned empty token")
	}
}

func TestLoginRejectsUnapprovedAccount(t *testing.T) {
	userRepo := newFakeUserRepo()
	departmentRepo := newFakeDepartmentRepo()
	department := departmentRepo.add("Tech", nil)

	svc := newTestAuthService(userRepo, departmentRepo)

	if _, err := svc.Register(context.Background(), registerRequest(department.ID)); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{StudentID: "20230001", Password: "secret123"})
	if !errors.Is(err, apperrors.ErrPendingApproval) {
		t.Errorf("Login error = %v, want ErrPendingApproval", err)
	}
}

func TestLoginInvalidCredentialsIndistinguishable(t *testing.T) {
	userRepo := newFakeUserRepo()
	departmentRepo := newFakeDepartmentRepo()
	department := departmentRepo.add("Tech", nil)

	svc := newTestAuthService(userRepo, departmentRepo)

	user, err := svc.Register(context.Background(), registerRequest(department.ID))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := userRepo.Approve(context.Background(), user.ID); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	_, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{StudentID: "nobody", Password: "secret123"})
	_, wrongPassErr := svc.Login(context.Background(), &dto.LoginRequest{StudentID: "20230001", Password: "wrong"})

	if !errors.Is(unknownErr, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongPassErr, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPassErr)
	}
}
