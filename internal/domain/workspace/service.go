package workspace

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CreateWorkspaceInput struct {
	Name        string
	Description string
}

type CreateResourceInput struct {
	Type    ResourceType
	Title   string
	Content string
	URL     string
}

// UpdateResourceInput carries the mutable resource fields. Nil means
// unchanged.
type UpdateResourceInput struct {
	Title   *string
	Content *string
	URL     *string
}

type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateWorkspaceInput) (*Workspace, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Workspace, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Workspace, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error

	AddMember(ctx context.Context, workspaceID, actorID, userID uuid.UUID, role Role) (*Member, error)
	RemoveMember(ctx context.Context, workspaceID, actorID, userID uuid.UUID) error

	CreateResource(ctx context.Context, workspaceID, userID uuid.UUID, input CreateResourceInput) (*Resource, error)
	ListResources(ctx context.Context, workspaceID, userID uuid.UUID) ([]Resource, error)
	UpdateResource(ctx context.Context, id, workspaceID, userID uuid.UUID, input UpdateResourceInput) (*Resource, error)
	DeleteResource(ctx context.Context, id, workspaceID, userID uuid.UUID) error
}

type service struct {
	repo Repository
	log  *logrus.Logger
}

func NewService(repo Repository, log *logrus.Logger) Service {
	return &service{repo: repo, log: log}
}

// memberRole resolves the caller's role, mapping non-membership to
// ErrWorkspaceNotFound.
func (s *service) memberRole(workspaceID, userID uuid.UUID) (Role, error) {
	member, err := s.repo.FindMember(workspaceID, userID)
	if err != nil {
		return "", err
	}
	return member.Role, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateWorkspaceInput) (*Workspace, error) {
	workspace := &Workspace{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     ownerID,
	}

	if err := s.repo.CreateWorkspace(workspace); err != nil {
		return nil, err
	}

	owner := &Member{
		WorkspaceID: workspace.ID,
		UserID:      ownerID,
		Role:        RoleAdmin,
	}
	if err := s.repo.AddMember(owner); err != nil {
		return nil, err
	}
	workspace.Members = []Member{*owner}

	s.log.WithFields(logrus.Fields{
		"workspace_id": workspace.ID,
		"owner_id":     ownerID,
	}).Info("workspace created")

	return workspace, nil
}

func (s *service) Get(ctx context.Context, id, userID uuid.UUID) (*Workspace, error) {
	if _, err := s.memberRole(id, userID); err != nil {
		return nil, err
	}
	return s.repo.FindWorkspaceByID(id)
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]Workspace, error) {
	return s.repo.FindWorkspacesByUser(userID)
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	role, err := s.memberRole(id, userID)
	if err != nil {
		return err
	}
	if role != RoleAdmin {
		return ErrForbidden
	}

	if err := s.repo.DeleteWorkspace(id); err != nil {
		return err
	}

	s.log.WithField("workspace_id", id).Info("workspace deleted")
	return nil
}

func (s *service) AddMember(ctx context.Context, workspaceID, actorID, userID uuid.UUID, role Role) (*Member, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	actorRole, err := s.memberRole(workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if actorRole != RoleAdmin {
		return nil, ErrForbidden
	}

	member := &Member{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}
	if err := s.repo.AddMember(member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *service) RemoveMember(ctx context.Context, workspaceID, actorID, userID uuid.UUID) error {
	actorRole, err := s.memberRole(workspaceID, actorID)
	if err != nil {
		return err
	}
	// Members may leave on their own; removing someone else takes admin.
	if actorID != userID && actorRole != RoleAdmin {
		return ErrForbidden
	}

	return s.repo.RemoveMember(workspaceID, userID)
}

func (s *service) CreateResource(ctx context.Context, workspaceID, userID uuid.UUID, input CreateResourceInput) (*Resource, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidResourceType
	}

	role, err := s.memberRole(workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if !role.CanEdit() {
		return nil, ErrForbidden
	}

	resource := &Resource{
		WorkspaceID: workspaceID,
		CreatorID:   userID,
		Type:        input.Type,
		Title:       input.Title,
		Content:     input.Content,
		URL:         input.URL,
	}

	if err := s.repo.CreateResource(resource); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"workspace_id": workspaceID,
		"resource_id":  resource.ID,
		"type":         resource.Type,
	}).Info("resource created")

	return resource, nil
}

func (s *service) ListResources(ctx context.Context, workspaceID, userID uuid.UUID) ([]Resource, error) {
	if _, err := s.memberRole(workspaceID, userID); err != nil {
		return nil, err
	}
	return s.repo.FindResources(workspaceID)
}

func (s *service) UpdateResource(ctx context.Context, id, workspaceID, userID uuid.UUID, input UpdateResourceInput) (*Resource, error) {
	role, err := s.memberRole(workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if !role.CanEdit() {
		return nil, ErrForbidden
	}

	resource, err := s.repo.FindResourceByID(id, workspaceID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		resource.Title = *input.Title
	}
	if input.Content != nil {
		resource.Content = *input.Content
	}
	if input.URL != nil {
		resource.URL = *input.URL
	}

	if err := s.repo.UpdateResource(resource); err != nil {
		return nil, err
	}

	return resource, nil
}

func (s *service) DeleteResource(ctx context.Context, id, workspaceID, userID uuid.UUID) error {
	role, err := s.memberRole(workspaceID, userID)
	if err != nil {
		return err
	}
	if !role.CanEdit() {
		return ErrForbidden
	}

	return s.repo.DeleteResource(id, workspaceID)
}
