package consistency

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(record *DailyRecord) error
	Update(record *DailyRecord) error
	FindByUserDate(userID uuid.UUID, date time.Time) (*DailyRecord, error)
	FindRecent(userID uuid.UUID, limit int) ([]DailyRecord, error)
	FindSince(userID uuid.UUID, since time.Time) ([]DailyRecord, error)
	Delete(id, userID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(record *DailyRecord) error {
	return r.db.Create(record).Error
}

func (r *gormRepository) Update(record *DailyRecord) error {
	return r.db.Save(record).Error
}

func (r *gormRepository) FindByUserDate(userID uuid.UUID, date time.Time) (*DailyRecord, error) {
	var record DailyRecord
	err := r.db.First(&record, "user_id = ? AND date = ?", userID, date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindRecent returns the newest records first.
func (r *gormRepository) FindRecent(userID uuid.UUID, limit int) ([]DailyRecord, error) {
	var records []DailyRecord
	query := r.db.Where("user_id = ?", userID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

// FindSince returns records on or after since, oldest first.
func (r *gormRepository) FindSince(userID uuid.UUID, since time.Time) ([]DailyRecord, error) {
	var records []DailyRecord
	err := r.db.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *gormRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Delete(&DailyRecord{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
