package progress

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(snapshot *Snapshot) error
	FindByUser(userID uuid.UUID, limit int) ([]Snapshot, error)
	FindSince(userID uuid.UUID, since time.Time) ([]Snapshot, error)
	Latest(userID uuid.UUID) (*Snapshot, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(snapshot *Snapshot) error {
	err := r.db.Create(snapshot).Error
	if err != nil && isUniqueViolation(err) {
		return ErrSnapshotExists
	}
	return err
}

func (r *gormRepository) FindByUser(userID uuid.UUID, limit int) ([]Snapshot, error) {
	var snapshots []Snapshot
	query := r.db.Where("user_id = ?", userID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&snapshots).Error
	return snapshots, err
}

func (r *gormRepository) FindSince(userID uuid.UUID, since time.Time) ([]Snapshot, error) {
	var snapshots []Snapshot
	err := r.db.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&snapshots).Error
	return snapshots, err
}

func (r *gormRepository) Latest(userID uuid.UUID) (*Snapshot, error) {
	var snapshot Snapshot
	err := r.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		First(&snapshot).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value") ||
		strings.Contains(err.Error(), "SQLSTATE 23505")
}
