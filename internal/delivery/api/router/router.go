// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"jobtracker/internal/delivery/api/middleware"
	"jobtracker/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	JobHandler      *handler.JobHandler
	CategoryHandler *handler.CategoryHandler
	HealthHandler   *handler.HealthHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	jobHandler      *handler.JobHandler
	categoryHandler *handler.CategoryHandler
	healthHandler   *handler.HealthHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		userHandler:     params.UserHandler,
		jobHandler:      params.JobHandler,
		categoryHandler: params.CategoryHandler,
		healthHandler:   params.HealthHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", r.healthHandler.HealthCheck)

	// Token endpoint (password grant)
	e.POST("/token", r.authHandler.Token)

	// Registration is public, everything else under /users is the caller's own account
	e.POST("/users", r.userHandler.Register)
	meGroup := e.Group("/users/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("", r.userHandler.GetProfile)
		meGroup.PUT("", r.userHandler.UpdateProfile)
		meGroup.DELETE("", r.userHandler.DeleteAccount)
	}

	// Job routes, always scoped to the authenticated owner
	jobsGroup := e.Group("/jobs")
	jobsGroup.Use(r.authMiddleware.Authenticate)
	{
		jobsGroup.POST("", r.jobHandler.CreateJob)
		jobsGroup.GET("", r.jobHandler.ListJobs)
		jobsGroup.GET("/search", r.jobHandler.SearchJobs)
		jobsGroup.GET("/count", r.jobHandler.CountJobs)
		jobsGroup.GET("/:id", r.jobHandler.GetJob)
		jobsGroup.PUT("/:id", r.jobHandler.UpdateJob)
		jobsGroup.DELETE("/:id", r.jobHandler.DeleteJob)
	}

	// Categories are shared and public
	categoriesGroup := e.Group("/categories")
	{
		categoriesGroup.POST("", r.categoryHandler.CreateCategory)
		categoriesGroup.GET("", r.categoryHandler.ListCategories)
		categoriesGroup.GET("/:id", r.categoryHandler.GetCategory)
		categoriesGroup.PUT("/:id", r.categoryHandler.UpdateCategory)
		categoriesGroup.DELETE("/:id", r.categoryHandler.DeleteCategory)
	}
}
