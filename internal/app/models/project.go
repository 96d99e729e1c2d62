package models

import "time"

// DefaultProjectStatus is assigned to newly created projects.
const DefaultProjectStatus = "PENDING"

// Project represents a unit of work assignable to one or more users.
// Status is a free-form string that assigned students update themselves.
type Project struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	Assignees   []Assignee `json:"assignees"` // Relation, no db tag
}

// Assignee is the safe projection of an assigned user attached to a project.
type Assignee struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// ProjectAssignment is the join record linking a user to a project.
// The (user_id, project_id) pair is unique.
type ProjectAssignment struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"userId"`
	ProjectID int64 `json:"projectId"`
}
