package dto

// CreateDepartmentRequest represents department creation data.
// A nil parentId creates a root department.
type CreateDepartmentRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *int64 `json:"parentId,omitempty" binding:"omitempty,min=1"`
}

// UpdateDepartmentRequest represents department update data.
type UpdateDepartmentRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *int64 `json:"parentId,omitempty" binding:"omitempty,min=1"`
}
