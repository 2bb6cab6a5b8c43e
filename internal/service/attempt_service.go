package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/model"
	"quizhive-backend/internal/repository"
	logger "quizhive-backend/pkg/logging"
	"quizhive-backend/utilities"
)

// SubmitAttemptRequest is the attempt submission payload.
type SubmitAttemptRequest struct {
	QuizID    uint              `json:"quiz_id"`
	Answers   []SubmittedAnswer `json:"answers"`
	TimeSpent int               `json:"time_spent_seconds"`
}

// AttemptCreatedEvent is published on the event bus after a successful
// submission; the leaderboard cache subscribes to it.
type AttemptCreatedEvent struct {
	AttemptID uint
	QuizID    uint
	UserID    uint
	StreamID  uint
}

type AttemptService interface {
	Submit(caller *model.User, req *SubmitAttemptRequest) (*model.Attempt, error)
	ListOwn(caller *model.User, userID uint) ([]model.Attempt, error)
	ListForQuiz(caller *model.User, quizID uint, offset, limit int) ([]model.Attempt, int64, error)
}

type attemptService struct {
	attemptRepo  repository.AttemptRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	bus          *utilities.EventBus
}

func NewAttemptService(attemptRepo repository.AttemptRepository, quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository, userRepo repository.UserRepository,
	bus *utilities.EventBus) AttemptService {
	return &attemptService{
		attemptRepo:  attemptRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		bus:          bus,
	}
}

// Submit validates the submission against the authoritative question set,
// grades it, persists the immutable attempt and then awards stars. The star
// award runs after the insert and never rolls the attempt back: a failed
// reward is logged and dropped.
func (s *attemptService) Submit(caller *model.User, req *SubmitAttemptRequest) (*model.Attempt, error) {
	if req.QuizID == 0 || req.Answers == nil {
		return nil, apperr.Validation("MISSING_FIELDS", "quiz_id and answers are required")
	}

	quiz, err := s.quizRepo.GetByID(req.QuizID)
	if err != nil {
		return nil, apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}

	if quiz.InstitutionOnly && quiz.InstitutionID != caller.InstitutionID {
		return nil, apperr.Forbidden("ACCESS_DENIED", "this quiz is restricted to its institution")
	}

	questions, err := s.questionRepo.ListByQuiz(quiz.ID)
	if err != nil {
		return nil, apperr.From(err)
	}
	if len(questions) == 0 {
		return nil, apperr.Validation("NO_QUESTIONS", "this quiz has no questions yet")
	}

	if err := validateAnswers(questions, req.Answers); err != nil {
		return nil, err
	}

	// Friendly pre-check; the unique index below is what actually closes the
	// race between two concurrent submissions.
	exists, err := s.attemptRepo.ExistsForUserQuiz(caller.ID, quiz.ID)
	if err != nil {
		return nil, apperr.From(err)
	}
	if exists {
		return nil, apperr.Conflict("ALREADY_ATTEMPTED", "you have already attempted this quiz")
	}

	graded, score := gradeAnswers(questions, req.Answers)
	attempt := &model.Attempt{
		QuizID:             quiz.ID,
		UserID:             caller.ID,
		Answers:            graded,
		Score:              score,
		TotalPossibleScore: quiz.TotalPoints,
		Percentage:         percentageOf(score, quiz.TotalPoints),
		TimeSpentSeconds:   req.TimeSpent,
		DateOfAttempt:      time.Now().UTC(),
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("ALREADY_ATTEMPTED", "you have already attempted this quiz")
		}
		return nil, apperr.From(err)
	}

	if stars := starsForPercentage(attempt.Percentage); stars > 0 {
		if err := s.userRepo.AddStars(caller.ID, stars); err != nil {
			logger.Error("star award failed for user %d attempt %d: %v", caller.ID, attempt.ID, err)
		} else {
			caller.StarsGathered += stars
		}
	}

	s.bus.Publish(utilities.EventAttemptCreated, AttemptCreatedEvent{
		AttemptID: attempt.ID,
		QuizID:    quiz.ID,
		UserID:    caller.ID,
		StreamID:  quiz.StreamID,
	})

	return attempt, nil
}

// ListOwn lets a user read only their own attempt history.
func (s *attemptService) ListOwn(caller *model.User, userID uint) ([]model.Attempt, error) {
	if caller.ID != userID {
		return nil, apperr.Forbidden("FORBIDDEN", "you may only view your own attempts")
	}
	attempts, err := s.attemptRepo.ListByUser(userID)
	if err != nil {
		return nil, apperr.From(err)
	}
	return attempts, nil
}

// ListForQuiz lets a quiz owner read every attempt made on their quiz.
func (s *attemptService) ListForQuiz(caller *model.User, quizID uint, offset, limit int) ([]model.Attempt, int64, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, 0, apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}
	if quiz.OwnerID != caller.ID {
		return nil, 0, apperr.Forbidden("FORBIDDEN", "only the quiz owner may view its attempts")
	}
	attempts, total, err := s.attemptRepo.ListByQuiz(quizID, offset, limit)
	if err != nil {
		return nil, 0, apperr.From(err)
	}
	return attempts, total, nil
}
