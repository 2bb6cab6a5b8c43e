package repository

import (
	"gorm.io/gorm"

	"quizhive-backend/internal/db"
	"quizhive-backend/internal/model"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	GetByID(id uint) (*model.Question, error)
	ListByQuiz(quizID uint) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint, quizID uint) error
}

type questionRepository struct{}

func NewQuestionRepository() QuestionRepository {
	return &questionRepository{}
}

// Create inserts the question and recomputes the parent quiz's aggregates in
// the same transaction.
func (r *questionRepository) Create(question *model.Question) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return recomputeQuizAggregates(tx, question.QuizID)
	})
}

func (r *questionRepository) GetByID(id uint) (*model.Question, error) {
	var question model.Question
	err := db.GetDB().Where("id = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ListByQuiz returns the quiz's questions in insertion order.
func (r *questionRepository) ListByQuiz(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := db.GetDB().Where("quiz_id = ?", quizID).Order("id asc").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(question *model.Question) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		return recomputeQuizAggregates(tx, question.QuizID)
	})
}

func (r *questionRepository) Delete(id uint, quizID uint) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Question{}, id).Error; err != nil {
			return err
		}
		return recomputeQuizAggregates(tx, quizID)
	})
}

// recomputeQuizAggregates rereads the full live question set and overwrites
// the quiz's derived fields. A full recompute (never an increment) makes
// concurrent writers converge regardless of ordering.
func recomputeQuizAggregates(tx *gorm.DB, quizID uint) error {
	var questions []model.Question
	if err := tx.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return err
	}
	totalPoints, numberOfQuestions := quizAggregates(questions)
	return tx.Model(&model.Quiz{}).Where("id = ?", quizID).
		Updates(map[string]interface{}{
			"total_points":        totalPoints,
			"number_of_questions": numberOfQuestions,
		}).Error
}

// quizAggregates reduces a question set to the quiz's derived fields.
func quizAggregates(questions []model.Question) (totalPoints, numberOfQuestions int) {
	for _, q := range questions {
		totalPoints += q.Points
	}
	return totalPoints, len(questions)
}
