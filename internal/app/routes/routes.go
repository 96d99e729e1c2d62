package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yichen/campuswork/internal/app/controllers"
	"github.com/yichen/campuswork/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	departmentController *controllers.DepartmentController,
	projectController *controllers.ProjectController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Department listing is public so the registration form can offer choices
	api.GET("/departments", departmentController.GetAll)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.Authenticate())
	{
		authenticated.GET("/users/me", userController.GetMe)

		projects := authenticated.Group("/projects")
		{
			projects.GET("", projectController.GetAll)
			projects.GET("/:id", projectController.GetByID)
			// Assignment holders and administrators; checked in the service
			projects.PUT("/:id/status", projectController.UpdateStatus)

			projectsAdmin := projects.Group("")
			projectsAdmin.Use(authMiddleware.RequireSuperAdmin())
			{
				projectsAdmin.POST("", projectController.Create)
				projectsAdmin.PUT("/:id", projectController.Update)
				projectsAdmin.DELETE("/:id", projectController.Delete)
			}
		}

		// --- Super admin routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RequireSuperAdmin())
		{
			users := admin.Group("/users")
			{
				users.GET("", userController.ListApproved)
				users.GET("/pending", userController.ListPending)
				users.PUT("/:id/approve", userController.Approve)
				users.PUT("/:id/role", userController.ChangeRole)
				users.DELETE("/:id", userController.Delete)
			}

			departments := admin.Group("/departments")
			{
				departments.POST("", departmentController.Create)
				departments.PUT("/:id", departmentController.Update)
				departments.DELETE("/:id", departmentController.Delete)
			}
		}
	}
}
