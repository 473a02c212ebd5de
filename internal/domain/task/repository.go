package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter narrows task listings. Nil pointer fields are ignored.
type Filter struct {
	UserID   uuid.UUID
	Status   *Status
	Category *Category
	Priority *Priority
	Search   *string
	DueAfter *time.Time
	Page     int
	PageSize int
}

type Repository interface {
	Create(task *Task) error
	FindByID(id, userID uuid.UUID) (*Task, error)
	FindAll(filter Filter) ([]Task, int64, error)
	Update(task *Task) error
	Delete(id, userID uuid.UUID) error
	CountByStatus(userID uuid.UUID, status Status) (int64, error)
	DistinctUserIDs() ([]uuid.UUID, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(task *Task) error {
	return r.db.Create(task).Error
}

// FindByID is ownership scoped. A task belonging to another user reports
// not found rather than forbidden, so task IDs are not probeable.
func (r *gormRepository) FindByID(id, userID uuid.UUID) (*Task, error) {
	var task Task
	err := r.db.First(&task, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *gormRepository) FindAll(filter Filter) ([]Task, int64, error) {
	var tasks []Task
	var total int64

	query := r.db.Model(&Task{}).Where("user_id = ?", filter.UserID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.DueAfter != nil {
		query = query.Where("due_date >= ?", *filter.DueAfter)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, total, err
}

func (r *gormRepository) Update(task *Task) error {
	return r.db.Save(task).Error
}

func (r *gormRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Delete(&Task{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *gormRepository) CountByStatus(userID uuid.UUID, status Status) (int64, error) {
	var count int64
	err := r.db.Model(&Task{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

// DistinctUserIDs lists every user with at least one task. The nightly
// snapshot job iterates this set.
func (r *gormRepository) DistinctUserIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&Task{}).Distinct("user_id").Pluck("user_id", &ids).Error
	return ids, err
}
