package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(block *ScheduleBlock) error
	FindByID(id, userID uuid.UUID) (*ScheduleBlock, error)
	FindByUserDate(userID uuid.UUID, date time.Time) ([]ScheduleBlock, error)
	FindByUserRange(userID uuid.UUID, from, to time.Time) ([]ScheduleBlock, error)
	Update(block *ScheduleBlock) error
	Delete(id, userID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(block *ScheduleBlock) error {
	return r.db.Create(block).Error
}

func (r *gormRepository) FindByID(id, userID uuid.UUID) (*ScheduleBlock, error) {
	var block ScheduleBlock
	err := r.db.First(&block, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *gormRepository) FindByUserDate(userID uuid.UUID, date time.Time) ([]ScheduleBlock, error) {
	var blocks []ScheduleBlock
	err := r.db.
		Where("user_id = ? AND date = ?", userID, date).
		Order("start_time ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *gormRepository) FindByUserRange(userID uuid.UUID, from, to time.Time) ([]ScheduleBlock, error) {
	var blocks []ScheduleBlock
	err := r.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, start_time ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *gormRepository) Update(block *ScheduleBlock) error {
	return r.db.Save(block).Error
}

func (r *gormRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Delete(&ScheduleBlock{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlockNotFound
	}
	return nil
}
