package repository

import (
	"quizhive-backend/internal/db"
	"quizhive-backend/internal/model"
)

type StreamRepository interface {
	Create(stream *model.Stream) error
	GetByID(id uint) (*model.Stream, error)
	List(offset, limit int) ([]model.Stream, int64, error)
	Update(stream *model.Stream) error
	Delete(id uint) error
	ExistsByName(name string, excludeID uint) (bool, error)
}

type streamRepository struct{}

func NewStreamRepository() StreamRepository {
	return &streamRepository{}
}

func (r *streamRepository) Create(stream *model.Stream) error {
	return db.GetDB().Create(stream).Error
}

func (r *streamRepository) GetByID(id uint) (*model.Stream, error) {
	var stream model.Stream
	err := db.GetDB().Where("id = ?", id).First(&stream).Error
	if err != nil {
		return nil, err
	}
	return &stream, nil
}

func (r *streamRepository) List(offset, limit int) ([]model.Stream, int64, error) {
	var (
		streams []model.Stream
		total   int64
	)
	if err := db.GetDB().Model(&model.Stream{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.GetDB().Order("id asc").Offset(offset).Limit(limit).Find(&streams).Error
	return streams, total, err
}

func (r *streamRepository) Update(stream *model.Stream) error {
	return db.GetDB().Save(stream).Error
}

func (r *streamRepository) Delete(id uint) error {
	return db.GetDB().Delete(&model.Stream{}, id).Error
}

// ExistsByName checks stream-name uniqueness case-insensitively.
func (r *streamRepository) ExistsByName(name string, excludeID uint) (bool, error) {
	var count int64
	q := db.GetDB().Model(&model.Stream{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
