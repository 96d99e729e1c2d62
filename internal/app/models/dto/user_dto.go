package dto

import "github.com/yichen/campuswork/internal/app/models"

// ChangeRoleRequest represents a role change request for a user.
type ChangeRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// ApproveResponse wraps the approved user with a confirmation message.
type ApproveResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}
