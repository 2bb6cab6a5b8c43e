package model

import (
	"time"

	"gorm.io/datatypes"
)

// Question types.
const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
)

type Institution struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Stream struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"not null;uniqueIndex"` // stored lowercase
	Password      string    `json:"-" gorm:"not null"`                 // bcrypt hash, never serialized
	StreamID      uint      `json:"stream_id" gorm:"index"`
	InstitutionID uint      `json:"institution_id" gorm:"index"`
	StarsGathered int       `json:"stars_gathered" gorm:"not null;default:0"` // mutated only by the attempt engine
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Quiz struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	OwnerID       uint   `json:"owner_id" gorm:"not null;index"`
	StreamID      uint   `json:"stream_id" gorm:"not null;index"`
	InstitutionID uint   `json:"institution_id" gorm:"index"`
	Name          string `json:"name" gorm:"not null"`
	Description   string `json:"description" gorm:"not null"`
	// TotalPoints and NumberOfQuestions are recomputed from the live question
	// set on every question mutation, never incremented.
	TotalPoints       int       `json:"total_points" gorm:"not null;default:0"`
	NumberOfQuestions int       `json:"number_of_questions" gorm:"not null;default:0"`
	InstitutionOnly   bool      `json:"institution_only" gorm:"not null;default:false"`
	IsActive          bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Question struct {
	ID            uint                         `json:"id" gorm:"primaryKey"`
	QuizID        uint                         `json:"quiz_id" gorm:"not null;index"`
	Text          string                       `json:"text" gorm:"not null"`
	Options       datatypes.JSONSlice[string]  `json:"options"`
	CorrectAnswer int                          `json:"correct_answer_index"` // 0-based; stripped for non-owners
	Points        int                          `json:"points_awarded" gorm:"not null;default:1"`
	Type          string                       `json:"type" gorm:"not null;default:'multiple-choice'"`
	CreatedAt     time.Time                    `json:"created_at"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

// AttemptAnswer is one graded answer, embedded in the attempt's JSON column in
// submission order.
type AttemptAnswer struct {
	QuestionID          uint `json:"question_id"`
	SelectedAnswerIndex int  `json:"selected_answer_index"`
	IsCorrect           bool `json:"is_correct"`
	PointsEarned        int  `json:"points_earned"`
}

// Attempt is immutable after creation. The composite unique index closes the
// duplicate-submission race at the database rather than trusting the
// check-then-act sequence in the service.
type Attempt struct {
	ID                 uint                               `json:"id" gorm:"primaryKey"`
	QuizID             uint                               `json:"quiz_id" gorm:"not null;uniqueIndex:idx_attempt_user_quiz"`
	UserID             uint                               `json:"user_id" gorm:"not null;uniqueIndex:idx_attempt_user_quiz"`
	Answers            datatypes.JSONSlice[AttemptAnswer] `json:"answers"`
	Score              int                                `json:"score" gorm:"not null"`
	TotalPossibleScore int                                `json:"total_possible_score" gorm:"not null"`
	Percentage         float64                            `json:"percentage" gorm:"not null"` // rounded to 2dp; 0 when total is 0
	TimeSpentSeconds   int                                `json:"time_spent_seconds"`
	DateOfAttempt      time.Time                          `json:"date_of_attempt"`
	CreatedAt          time.Time                          `json:"created_at"`
}

// QuestionView is the question payload returned to callers who do not own the
// parent quiz: identical shape minus the correct answer.
type QuestionView struct {
	ID      uint     `json:"id"`
	QuizID  uint     `json:"quiz_id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Points  int      `json:"points_awarded"`
	Type    string   `json:"type"`
}

// View strips the correct answer from a question.
func (q *Question) View() QuestionView {
	return QuestionView{
		ID:      q.ID,
		QuizID:  q.QuizID,
		Text:    q.Text,
		Options: q.Options,
		Points:  q.Points,
		Type:    q.Type,
	}
}
