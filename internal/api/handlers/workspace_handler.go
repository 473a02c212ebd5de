package handlers

import (
	"errors"
	"net/http"

	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/workspace"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type WorkspaceHandler struct {
	service workspace.Service
	log     *logrus.Logger
}

func NewWorkspaceHandler(service workspace.Service, log *logrus.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{service: service, log: log}
}

// CreateWorkspace godoc
// @Summary Create a workspace
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Router /api/workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	req := c.MustGet("validated_model").(*dto.CreateWorkspaceRequest)

	created, err := h.service.Create(c.Request.Context(), userID, workspace.CreateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.ToWorkspaceResponse(created)})
}

// ListWorkspaces godoc
// @Summary List workspaces the user belongs to
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.WorkspaceResponse
// @Router /api/workspaces [get]
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	workspaces, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToWorkspaceListResponse(workspaces)})
}

// GetWorkspace godoc
// @Summary Get one workspace
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} map[string]string
// @Router /api/workspaces/{id} [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	found, err := h.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToWorkspaceResponse(found)})
}

// DeleteWorkspace godoc
// @Summary Delete a workspace
// @Tags workspaces
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /api/workspaces/{id} [delete]
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddMember godoc
// @Summary Add a member to a workspace
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body dto.AddMemberRequest true "Member details"
// @Success 201 {object} dto.MemberResponse
// @Failure 403 {object} map[string]string
// @Router /api/workspaces/{id}/members [post]
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	req := c.MustGet("validated_model").(*dto.AddMemberRequest)

	member, err := h.service.AddMember(c.Request.Context(), workspaceID, userID, req.UserID, workspace.Role(req.Role))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.MemberResponse{
		UserID: member.UserID,
		Role:   string(member.Role),
	}})
}

// RemoveMember godoc
// @Summary Remove a member from a workspace
// @Tags workspaces
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param userId path string true "User ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /api/workspaces/{id}/members/{userId} [delete]
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	memberID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), workspaceID, actorID, memberID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateResource godoc
// @Summary Create a shared resource
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body dto.CreateResourceRequest true "Resource details"
// @Success 201 {object} dto.ResourceResponse
// @Failure 403 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /api/workspaces/{id}/resources [post]
func (h *WorkspaceHandler) CreateResource(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	req := c.MustGet("validated_model").(*dto.CreateResourceRequest)

	resource, err := h.service.CreateResource(c.Request.Context(), workspaceID, userID, workspace.CreateResourceInput{
		Type:    workspace.ResourceType(req.Type),
		Title:   req.Title,
		Content: req.Content,
		URL:     req.URL,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.ToResourceResponse(resource)})
}

// ListResources godoc
// @Summary List a workspace's resources
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {array} dto.ResourceResponse
// @Router /api/workspaces/{id}/resources [get]
func (h *WorkspaceHandler) ListResources(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	resources, err := h.service.ListResources(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToResourceListResponse(resources)})
}

// UpdateResource godoc
// @Summary Update a shared resource
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param resourceId path string true "Resource ID"
// @Param request body dto.UpdateResourceRequest true "Resource changes"
// @Success 200 {object} dto.ResourceResponse
// @Failure 403 {object} map[string]string
// @Router /api/workspaces/{id}/resources/{resourceId} [put]
func (h *WorkspaceHandler) UpdateResource(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	resourceID, err := uuid.Parse(c.Param("resourceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resource id"})
		return
	}

	req := c.MustGet("validated_model").(*dto.UpdateResourceRequest)

	resource, err := h.service.UpdateResource(c.Request.Context(), resourceID, workspaceID, userID, workspace.UpdateResourceInput{
		Title:   req.Title,
		Content: req.Content,
		URL:     req.URL,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToResourceResponse(resource)})
}

// DeleteResource godoc
// @Summary Delete a shared resource
// @Tags workspaces
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param resourceId path string true "Resource ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /api/workspaces/{id}/resources/{resourceId} [delete]
func (h *WorkspaceHandler) DeleteResource(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	resourceID, err := uuid.Parse(c.Param("resourceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resource id"})
		return
	}

	if err := h.service.DeleteResource(c.Request.Context(), resourceID, workspaceID, userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workspace.ErrWorkspaceNotFound),
		errors.Is(err, workspace.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, workspace.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, workspace.ErrMemberExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, workspace.ErrInvalidRole),
		errors.Is(err, workspace.ErrInvalidResourceType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.WithError(err).Error("workspace handler error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
