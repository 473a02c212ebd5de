package routes

import (
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/handlers"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/security/auth"
	"github.com/gin-gonic/gin"
)

type WorkspaceRoutes struct {
	handler         *handlers.WorkspaceHandler
	jwtSecret       string
	resourceLimiter auth.RateLimiter
}

func NewWorkspaceRoutes(handler *handlers.WorkspaceHandler, jwtSecret string, resourceLimiter auth.RateLimiter) *WorkspaceRoutes {
	return &WorkspaceRoutes{
		handler:         handler,
		jwtSecret:       jwtSecret,
		resourceLimiter: resourceLimiter,
	}
}

// RegisterRoutes registers workspace and shared resource routes. Resource
// creation carries its own stricter rate limit.
func (r *WorkspaceRoutes) RegisterRoutes(router *gin.Engine) {
	validation := middleware.NewValidationMiddleware()

	workspaces := router.Group("/api/workspaces")
	workspaces.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	workspaces.GET("", r.handler.ListWorkspaces)
	workspaces.POST("", validation.ValidateRequest(&dto.CreateWorkspaceRequest{}), r.handler.CreateWorkspace)
	workspaces.GET("/:id", r.handler.GetWorkspace)
	workspaces.DELETE("/:id", r.handler.DeleteWorkspace)

	workspaces.POST("/:id/members", validation.ValidateRequest(&dto.AddMemberRequest{}), r.handler.AddMember)
	workspaces.DELETE("/:id/members/:userId", r.handler.RemoveMember)

	resources := workspaces.Group("/:id/resources")
	resources.GET("", r.handler.ListResources)

	createResource := []gin.HandlerFunc{
		validation.ValidateRequest(&dto.CreateResourceRequest{}),
		r.handler.CreateResource,
	}
	if r.resourceLimiter != nil {
		createResource = append([]gin.HandlerFunc{middleware.RateLimitMiddleware(r.resourceLimiter)}, createResource...)
	}
	resources.POST("", createResource...)

	resources.PUT("/:resourceId", validation.ValidateRequest(&dto.UpdateResourceRequest{}), r.handler.UpdateResource)
	resources.DELETE("/:resourceId", r.handler.DeleteResource)
}
