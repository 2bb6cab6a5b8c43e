package repository

import (
	"gorm.io/gorm"

	"quizhive-backend/internal/db"
	"quizhive-backend/internal/model"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	GetByID(id uint) (*model.Quiz, error)
	Update(quiz *model.Quiz) error
	DeleteCascade(id uint) error
	ListVisibleByStream(streamID, institutionID uint, offset, limit int) ([]model.Quiz, int64, error)
	CountByStream(streamID uint) (int64, error)
	CountByInstitution(institutionID uint) (int64, error)
	CountAvailable(streamID, institutionID uint) (int64, error)
}

type quizRepository struct{}

func NewQuizRepository() QuizRepository {
	return &quizRepository{}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return db.GetDB().Create(quiz).Error
}

func (r *quizRepository) GetByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := db.GetDB().Where("id = ?", id).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) Update(quiz *model.Quiz) error {
	return db.GetDB().Save(quiz).Error
}

// DeleteCascade removes the quiz together with its questions and attempts in
// one transaction.
func (r *quizRepository) DeleteCascade(id uint) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Attempt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}

// ListVisibleByStream returns active quizzes of a stream that the caller may
// see: public ones plus institution-only ones from the caller's institution.
func (r *quizRepository) ListVisibleByStream(streamID, institutionID uint, offset, limit int) ([]model.Quiz, int64, error) {
	var (
		quizzes []model.Quiz
		total   int64
	)
	base := db.GetDB().Model(&model.Quiz{}).
		Where("stream_id = ? AND is_active = ?", streamID, true).
		Where("institution_only = ? OR institution_id = ?", false, institutionID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Order("id asc").Offset(offset).Limit(limit).Find(&quizzes).Error
	return quizzes, total, err
}

func (r *quizRepository) CountByStream(streamID uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Quiz{}).Where("stream_id = ?", streamID).Count(&count).Error
	return count, err
}

func (r *quizRepository) CountByInstitution(institutionID uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Quiz{}).Where("institution_id = ?", institutionID).Count(&count).Error
	return count, err
}

// CountAvailable counts quizzes a user could currently take in a stream.
func (r *quizRepository) CountAvailable(streamID, institutionID uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Quiz{}).
		Where("stream_id = ? AND is_active = ?", streamID, true).
		Where("institution_only = ? OR institution_id = ?", false, institutionID).
		Count(&count).Error
	return count, err
}
