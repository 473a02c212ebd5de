package workspace

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role grants a member a level of access inside a workspace.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CanEdit reports whether the role may create or modify resources.
func (r Role) CanEdit() bool {
	return r == RoleAdmin || r == RoleEditor
}

// ResourceType classifies shared workspace content.
type ResourceType string

const (
	ResourceBookmark ResourceType = "bookmark"
	ResourcePrompt   ResourceType = "prompt"
	ResourceSnippet  ResourceType = "snippet"
	ResourceDocument ResourceType = "document"
	ResourceNote     ResourceType = "note"
	ResourceImage    ResourceType = "image"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceBookmark, ResourcePrompt, ResourceSnippet, ResourceDocument, ResourceNote, ResourceImage:
		return true
	}
	return false
}

// Workspace is a shared container for resources. The only cross-user
// surface in the system; everything else is single-owner.
type Workspace struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Members []Member `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// Member links a user to a workspace with a role.
type Member struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_member" json:"workspace_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_member" json:"user_id"`
	Role        Role      `gorm:"size:10;not null;default:'viewer'" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Member) TableName() string {
	return "workspace_members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Resource is one shared item inside a workspace.
type Resource struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID uuid.UUID    `gorm:"type:uuid;not null;index" json:"workspace_id"`
	CreatorID   uuid.UUID    `gorm:"type:uuid;not null" json:"creator_id"`
	Type        ResourceType `gorm:"size:20;not null" json:"type"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Content     string       `gorm:"type:text" json:"content,omitempty"`
	URL         string       `gorm:"size:2048" json:"url,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Domain errors
var (
	ErrWorkspaceNotFound   = errors.New("workspace not found")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrMemberExists        = errors.New("user is already a member")
	ErrForbidden           = errors.New("insufficient workspace role")
	ErrInvalidRole         = errors.New("invalid workspace role")
	ErrInvalidResourceType = errors.New("invalid resource type")
)
