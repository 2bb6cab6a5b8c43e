package service

import (
	"strings"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/model"
	"quizhive-backend/internal/repository"
)

type QuizRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	InstitutionOnly *bool  `json:"institution_only"`
	IsActive        *bool  `json:"is_active"`
}

type QuizService interface {
	Create(owner *model.User, req *QuizRequest) (*model.Quiz, error)
	Get(caller *model.User, id uint) (*model.Quiz, error)
	Update(caller *model.User, id uint, req *QuizRequest) (*model.Quiz, error)
	Delete(caller *model.User, id uint) error
	ListVisibleByStream(caller *model.User, streamID uint, offset, limit int) ([]model.Quiz, int64, error)
	ListQuestions(caller *model.User, quizID uint) ([]model.Question, bool, error)
}

type quizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	streamRepo   repository.StreamRepository
}

func NewQuizService(quizRepo repository.QuizRepository, questionRepo repository.QuestionRepository,
	streamRepo repository.StreamRepository) QuizService {
	return &quizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		streamRepo:   streamRepo,
	}
}

// Create builds a quiz owned by the caller. Owner, stream and institution come
// from the authenticated user, never from the request body.
func (s *quizService) Create(owner *model.User, req *QuizRequest) (*model.Quiz, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return nil, apperr.Validation("MISSING_FIELDS", "quiz name and description are required")
	}
	if owner.StreamID == 0 {
		return nil, apperr.Validation("MISSING_STREAM", "set a stream on your profile before creating quizzes")
	}

	quiz := &model.Quiz{
		OwnerID:       owner.ID,
		StreamID:      owner.StreamID,
		InstitutionID: owner.InstitutionID,
		Name:          name,
		Description:   description,
		IsActive:      true,
	}
	if req.InstitutionOnly != nil {
		quiz.InstitutionOnly = *req.InstitutionOnly
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, apperr.From(err)
	}
	return quiz, nil
}

// Get enforces the institution-only visibility rule for non-owners.
func (s *quizService) Get(caller *model.User, id uint) (*model.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}
	if quiz.OwnerID != caller.ID && quiz.InstitutionOnly && quiz.InstitutionID != caller.InstitutionID {
		return nil, apperr.Forbidden("ACCESS_DENIED", "this quiz is restricted to its institution")
	}
	return quiz, nil
}

func (s *quizService) Update(caller *model.User, id uint, req *QuizRequest) (*model.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}
	if quiz.OwnerID != caller.ID {
		return nil, apperr.Forbidden("FORBIDDEN", "only the quiz owner may edit it")
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		quiz.Name = name
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		quiz.Description = description
	}
	if req.InstitutionOnly != nil {
		quiz.InstitutionOnly = *req.InstitutionOnly
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, apperr.From(err)
	}
	return quiz, nil
}

// Delete cascades to the quiz's questions and attempts.
func (s *quizService) Delete(caller *model.User, id uint) error {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}
	if quiz.OwnerID != caller.ID {
		return apperr.Forbidden("FORBIDDEN", "only the quiz owner may delete it")
	}
	if err := s.quizRepo.DeleteCascade(id); err != nil {
		return apperr.From(err)
	}
	return nil
}

func (s *quizService) ListVisibleByStream(caller *model.User, streamID uint, offset, limit int) ([]model.Quiz, int64, error) {
	if _, err := s.streamRepo.GetByID(streamID); err != nil {
		return nil, 0, apperr.NotFound("STREAM_NOT_FOUND", "stream not found")
	}
	quizzes, total, err := s.quizRepo.ListVisibleByStream(streamID, caller.InstitutionID, offset, limit)
	if err != nil {
		return nil, 0, apperr.From(err)
	}
	return quizzes, total, nil
}

// ListQuestions returns the quiz's questions plus whether the caller owns the
// quiz; non-owners must receive answer-stripped views.
func (s *quizService) ListQuestions(caller *model.User, quizID uint) ([]model.Question, bool, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, false, apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}
	isOwner := quiz.OwnerID == caller.ID
	if !isOwner && quiz.InstitutionOnly && quiz.InstitutionID != caller.InstitutionID {
		return nil, false, apperr.Forbidden("ACCESS_DENIED", "this quiz is restricted to its institution")
	}

	questions, err := s.questionRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, false, apperr.From(err)
	}
	return questions, isOwner, nil
}
