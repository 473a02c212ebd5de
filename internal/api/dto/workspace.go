package dto

import (
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/workspace"
	"github.com/google/uuid"
)

// CreateWorkspaceRequest is the payload for a new workspace.
type CreateWorkspaceRequest struct {
	Name        string `json:"name" validate:"required,not_empty,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// AddMemberRequest invites a user into a workspace.
type AddMemberRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=admin editor viewer"`
}

// CreateResourceRequest is the payload for a shared resource.
type CreateResourceRequest struct {
	Type    string `json:"type" validate:"required,oneof=bookmark prompt snippet document note image"`
	Title   string `json:"title" validate:"required,not_empty,max=200"`
	Content string `json:"content" validate:"omitempty,max=50000"`
	URL     string `json:"url" validate:"omitempty,url,max=2048"`
}

// UpdateResourceRequest carries partial resource changes.
type UpdateResourceRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,not_empty,max=200"`
	Content *string `json:"content,omitempty" validate:"omitempty,max=50000"`
	URL     *string `json:"url,omitempty" validate:"omitempty,url,max=2048"`
}

// MemberResponse is the API shape of a membership.
type MemberResponse struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
}

// WorkspaceResponse is the API shape of a workspace.
type WorkspaceResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	OwnerID     uuid.UUID        `json:"ownerId"`
	Members     []MemberResponse `json:"members"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ResourceResponse is the API shape of a shared resource.
type ResourceResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatorID uuid.UUID `json:"creatorId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToWorkspaceResponse(w *workspace.Workspace) WorkspaceResponse {
	members := make([]MemberResponse, 0, len(w.Members))
	for _, m := range w.Members {
		members = append(members, MemberResponse{UserID: m.UserID, Role: string(m.Role)})
	}

	return WorkspaceResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		OwnerID:     w.OwnerID,
		Members:     members,
		CreatedAt:   w.CreatedAt,
	}
}

func ToWorkspaceListResponse(workspaces []workspace.Workspace) []WorkspaceResponse {
	out := make([]WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		out = append(out, ToWorkspaceResponse(&workspaces[i]))
	}
	return out
}

func ToResourceResponse(r *workspace.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        r.ID,
		CreatorID: r.CreatorID,
		Type:      string(r.Type),
		Title:     r.Title,
		Content:   r.Content,
		URL:       r.URL,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToResourceListResponse(resources []workspace.Resource) []ResourceResponse {
	out := make([]ResourceResponse, 0, len(resources))
	for i := range resources {
		out = append(out, ToResourceResponse(&resources[i]))
	}
	return out
}
