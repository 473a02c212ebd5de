package workspace

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateWorkspace(workspace *Workspace) error
	FindWorkspaceByID(id uuid.UUID) (*Workspace, error)
	FindWorkspacesByUser(userID uuid.UUID) ([]Workspace, error)
	UpdateWorkspace(workspace *Workspace) error
	DeleteWorkspace(id uuid.UUID) error

	AddMember(member *Member) error
	FindMember(workspaceID, userID uuid.UUID) (*Member, error)
	RemoveMember(workspaceID, userID uuid.UUID) error

	CreateResource(resource *Resource) error
	FindResourceByID(id, workspaceID uuid.UUID) (*Resource, error)
	FindResources(workspaceID uuid.UUID) ([]Resource, error)
	UpdateResource(resource *Resource) error
	DeleteResource(id, workspaceID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateWorkspace(workspace *Workspace) error {
	return r.db.Create(workspace).Error
}

func (r *gormRepository) FindWorkspaceByID(id uuid.UUID) (*Workspace, error) {
	var workspace Workspace
	err := r.db.Preload("Members").First(&workspace, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *gormRepository) FindWorkspacesByUser(userID uuid.UUID) ([]Workspace, error) {
	var workspaces []Workspace
	err := r.db.
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Preload("Members").
		Find(&workspaces).Error
	return workspaces, err
}

func (r *gormRepository) UpdateWorkspace(workspace *Workspace) error {
	return r.db.Omit("Members").Save(workspace).Error
}

func (r *gormRepository) DeleteWorkspace(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Resource{}, "workspace_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Member{}, "workspace_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&Workspace{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrWorkspaceNotFound
		}
		return nil
	})
}

func (r *gormRepository) AddMember(member *Member) error {
	var existing Member
	err := r.db.First(&existing, "workspace_id = ? AND user_id = ?", member.WorkspaceID, member.UserID).Error
	if err == nil {
		return ErrMemberExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(member).Error
}

func (r *gormRepository) FindMember(workspaceID, userID uuid.UUID) (*Member, error) {
	var member Member
	err := r.db.First(&member, "workspace_id = ? AND user_id = ?", workspaceID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Non-members see not-found, never forbidden, so workspace IDs
		// cannot be probed.
		return nil, ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *gormRepository) RemoveMember(workspaceID, userID uuid.UUID) error {
	result := r.db.Delete(&Member{}, "workspace_id = ? AND user_id = ?", workspaceID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

func (r *gormRepository) CreateResource(resource *Resource) error {
	return r.db.Create(resource).Error
}

func (r *gormRepository) FindResourceByID(id, workspaceID uuid.UUID) (*Resource, error) {
	var resource Resource
	err := r.db.First(&resource, "id = ? AND workspace_id = ?", id, workspaceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *gormRepository) FindResources(workspaceID uuid.UUID) ([]Resource, error) {
	var resources []Resource
	err := r.db.
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&resources).Error
	return resources, err
}

func (r *gormRepository) UpdateResource(resource *Resource) error {
	return r.db.Save(resource).Error
}

func (r *gormRepository) DeleteResource(id, workspaceID uuid.UUID) error {
	result := r.db.Delete(&Resource{}, "id = ? AND workspace_id = ?", id, workspaceID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}
