package dto

import "time"

// CreateProjectRequest represents project creation data. A project is always
// created with at least one assigned user.
type CreateProjectRequest struct {
	Name            string     `json:"name" binding:"required"`
	Description     *string    `json:"description,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	AssignedUserIDs []int64    `json:"assignedUserIds" binding:"required,min=1,dive,min=1"`
}

// UpdateProjectRequest represents a partial metadata update. Fields left nil
// are not touched; an omitted deadline is distinct from clearing it.
type UpdateProjectRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// UpdateProjectStatusRequest represents a status change by an assignee or an
// administrator.
type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
