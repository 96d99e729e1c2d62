package dto

import "github.com/yichen/campuswork/internal/app/models"

// RegisterRequest represents a registration request. All fields except email
// are required; the account stays unapproved until an administrator approves it.
type RegisterRequest struct {
	StudentID    string  `json:"studentId" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Password     string  `json:"password" binding:"required"`
	College      string  `json:"college" binding:"required"`
	Major        string  `json:"major" binding:"required"`
	Grade        string  `json:"grade" binding:"required"`
	Position     string  `json:"position" binding:"required"`
	DepartmentID int64   `json:"departmentId" binding:"required,min=1"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
}

// RegisterResponse wraps the created user with a human-readable message.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login with the issued bearer token.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
