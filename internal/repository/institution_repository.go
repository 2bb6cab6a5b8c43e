package repository

import (
	"quizhive-backend/internal/db"
	"quizhive-backend/internal/model"
)

type InstitutionRepository interface {
	Create(institution *model.Institution) error
	GetByID(id uint) (*model.Institution, error)
	List(offset, limit int) ([]model.Institution, int64, error)
	Update(institution *model.Institution) error
	Delete(id uint) error
	ExistsByNameAndCity(name, city string, excludeID uint) (bool, error)
}

type institutionRepository struct{}

func NewInstitutionRepository() InstitutionRepository {
	return &institutionRepository{}
}

func (r *institutionRepository) Create(institution *model.Institution) error {
	return db.GetDB().Create(institution).Error
}

func (r *institutionRepository) GetByID(id uint) (*model.Institution, error) {
	var institution model.Institution
	err := db.GetDB().Where("id = ?", id).First(&institution).Error
	if err != nil {
		return nil, err
	}
	return &institution, nil
}

func (r *institutionRepository) List(offset, limit int) ([]model.Institution, int64, error) {
	var (
		institutions []model.Institution
		total        int64
	)
	if err := db.GetDB().Model(&model.Institution{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.GetDB().Order("id asc").Offset(offset).Limit(limit).Find(&institutions).Error
	return institutions, total, err
}

func (r *institutionRepository) Update(institution *model.Institution) error {
	return db.GetDB().Save(institution).Error
}

func (r *institutionRepository) Delete(id uint) error {
	return db.GetDB().Delete(&model.Institution{}, id).Error
}

// ExistsByNameAndCity reports whether another institution already carries the
// same (name, city) pair, case-insensitively.
func (r *institutionRepository) ExistsByNameAndCity(name, city string, excludeID uint) (bool, error) {
	var count int64
	q := db.GetDB().Model(&model.Institution{}).
		Where("LOWER(name) = LOWER(?) AND LOWER(city) = LOWER(?)", name, city)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
