package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yichen/campuswork/internal/app/models/dto"
	"github.com/yichen/campuswork/internal/app/services"
	"github.com/yichen/campuswork/internal/middleware"
)

// ProjectController handles project-related operations
type ProjectController struct {
	projectService services.ProjectService
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService services.ProjectService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// Create handles project creation
// @Summary Create a new project
// @Description Creates a project and assigns it to the given users in one step
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project information"
// @Success 201 {object} models.Project "Project created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown assignee"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects [post]
func (c *ProjectController) Create(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	project, err := c.projectService.Create(ctx.Request.Context(), req.Name, req.Description, req.Deadline, req.AssignedUserIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

// GetAll retrieves all projects
// @Summary List projects
// @Description Retrieves all projects with their assignees, newest first
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Project "Projects"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects [get]
func (c *ProjectController) GetAll(ctx *gin.Context) {
	projects, err := c.projectService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// GetByID retrieves a single project
// @Summary Get project by ID
// @Description Retrieves a specific project with its assignees
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project "Project"
// @Failure 400 {object} dto.ErrorResponse "Invalid project ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id} [get]
func (c *ProjectController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Project ID")
	if !ok {
		return
	}

	project, err := c.projectService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// UpdateStatus changes a project's status
// @Summary Update project status
// @Description Sets the project status. Allowed for users assigned to the project and for administrators.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.UpdateProjectStatusRequest true "New status"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not assigned to this project"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id}/status [put]
func (c *ProjectController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Project ID")
	if !ok {
		return
	}

	var req dto.UpdateProjectStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	actor, exists := middleware.CurrentUser(ctx)
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	project, err := c.projectService.UpdateStatus(ctx.Request.Context(), actor, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// Update applies a partial metadata update
// @Summary Update a project
// @Description Updates name, description and/or deadline. Omitted fields are left untouched.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id} [put]
func (c *ProjectController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Project ID")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	project, err := c.projectService.UpdateMeta(ctx.Request.Context(), id, req.Name, req.Description, req.Deadline)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// Delete removes a project
// @Summary Delete a project
// @Description Deletes a project together with its assignment records
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 204 "Project deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid project ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id} [delete]
func (c *ProjectController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Project ID")
	if !ok {
		return
	}

	if err := c.projectService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
