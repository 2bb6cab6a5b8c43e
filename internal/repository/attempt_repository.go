package repository

import (
	"quizhive-backend/internal/db"
	"quizhive-backend/internal/model"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	ExistsForUserQuiz(userID, quizID uint) (bool, error)
	ListByUser(userID uint) ([]model.Attempt, error)
	ListRecentByUser(userID uint, limit int) ([]model.Attempt, error)
	ListByQuiz(quizID uint, offset, limit int) ([]model.Attempt, int64, error)
	ListAllByQuiz(quizID uint) ([]model.Attempt, error)
	ListAll() ([]model.Attempt, error)
	ListByStream(streamID uint) ([]model.Attempt, error)
}

type attemptRepository struct{}

func NewAttemptRepository() AttemptRepository {
	return &attemptRepository{}
}

// Create inserts the attempt. The (user_id, quiz_id) unique index turns a
// concurrent duplicate into gorm.ErrDuplicatedKey.
func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return db.GetDB().Create(attempt).Error
}

func (r *attemptRepository) ExistsForUserQuiz(userID, quizID uint) (bool, error) {
	var count int64
	err := db.GetDB().Model(&model.Attempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count > 0, err
}

func (r *attemptRepository) ListByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := db.GetDB().Where("user_id = ?", userID).
		Order("date_of_attempt desc").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) ListRecentByUser(userID uint, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := db.GetDB().Where("user_id = ?", userID).
		Order("date_of_attempt desc").Limit(limit).Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) ListByQuiz(quizID uint, offset, limit int) ([]model.Attempt, int64, error) {
	var (
		attempts []model.Attempt
		total    int64
	)
	base := db.GetDB().Model(&model.Attempt{}).Where("quiz_id = ?", quizID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Order("date_of_attempt desc").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}

func (r *attemptRepository) ListAllByQuiz(quizID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := db.GetDB().Where("quiz_id = ?", quizID).Find(&attempts).Error
	return attempts, err
}

// ListAll feeds the in-process leaderboard aggregation.
func (r *attemptRepository) ListAll() ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := db.GetDB().Find(&attempts).Error
	return attempts, err
}

// ListByStream returns attempts whose quiz belongs to the given stream.
func (r *attemptRepository) ListByStream(streamID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := db.GetDB().
		Joins("JOIN quizzes ON quizzes.id = attempts.quiz_id").
		Where("quizzes.stream_id = ?", streamID).
		Find(&attempts).Error
	return attempts, err
}
