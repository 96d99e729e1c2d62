package models

import (
	"time"
)

// Role defines the user role type
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// IsValid reports whether the role is one of the known enumeration values.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdministrative reports whether the role carries administrative privileges.
// Both ADMIN and SUPER_ADMIN bypass the assignment check on project status updates.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User defines the user model based on the 'users' table
type User struct {
	ID           int64       `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	StudentID    string      `json:"studentId" db:"student_id" example:"20230001"`             // Student number, used as the login key
	Name         string      `json:"name" db:"name" example:"Li Hua"`                          // Display name
	Password     string      `json:"-" db:"password"`                                          // Hashed password (excluded from JSON)
	College      string      `json:"college" db:"college" example:"School of Computing"`       // College the student belongs to
	Major        string      `json:"major" db:"major" example:"Software Engineering"`          // Major of study
	Grade        string      `json:"grade" db:"grade" example:"2023"`                          // Enrollment year / grade
	Position     string      `json:"position" db:"position" example:"member"`                  // Position inside the organization
	Email        *string     `json:"email,omitempty" db:"email"`                               // Optional contact email (nullable)
	Role         Role        `json:"role" db:"role" example:"STUDENT"`                         // Access role
	IsApproved   bool        `json:"isApproved" db:"is_approved" example:"false"`              // Whether an administrator approved the account
	DepartmentID int64       `json:"departmentId" db:"department_id" example:"1"`              // Department the user belongs to
	CreatedAt    time.Time   `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
	Department   *Department `json:"department,omitempty"`                                     // Relation, no db tag
}
