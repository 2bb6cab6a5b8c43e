package service

import (
	"strings"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/model"
	"quizhive-backend/internal/repository"
)

type QuestionRequest struct {
	QuizID        uint     `json:"quiz_id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer_index"`
	Points        int      `json:"points_awarded"`
	Type          string   `json:"type"`
}

type QuestionService interface {
	Create(caller *model.User, req *QuestionRequest) (*model.Question, error)
	Get(caller *model.User, id uint) (*model.Question, bool, error)
	Update(caller *model.User, id uint, req *QuestionRequest) (*model.Question, error)
	Delete(caller *model.User, id uint) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	quizRepo     repository.QuizRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository, quizRepo repository.QuizRepository) QuestionService {
	return &questionService{questionRepo: questionRepo, quizRepo: quizRepo}
}

func validateQuestionPayload(text string, options []string, correct int, points int, qType string) error {
	if strings.TrimSpace(text) == "" {
		return apperr.Validation("MISSING_FIELDS", "question text is required")
	}
	if len(options) < 2 {
		return apperr.Validation("INVALID_OPTIONS", "a question needs at least 2 options")
	}
	if qType == model.QuestionTypeTrueFalse && len(options) != 2 {
		return apperr.Validation("INVALID_OPTIONS", "a true-false question needs exactly 2 options")
	}
	if qType != model.QuestionTypeTrueFalse && qType != model.QuestionTypeMultipleChoice {
		return apperr.Validation("INVALID_TYPE", "question type must be multiple-choice or true-false")
	}
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return apperr.Validation("INVALID_OPTIONS", "options must not be empty")
		}
	}
	if correct < 0 || correct >= len(options) {
		return apperr.Validation("INVALID_CORRECT_ANSWER", "correct answer index is out of range")
	}
	if points < 1 {
		return apperr.Validation("INVALID_POINTS", "points awarded must be at least 1")
	}
	return nil
}

// Create adds a question to a quiz the caller owns; the parent quiz's
// aggregates are recomputed in the same transaction as the insert.
func (s *questionService) Create(caller *model.User, req *QuestionRequest) (*model.Question, error) {
	if req.QuizID == 0 {
		return nil, apperr.Validation("MISSING_FIELDS", "quiz_id is required")
	}
	quiz, err := s.quizRepo.GetByID(req.QuizID)
	if err != nil {
		return nil, apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}
	if quiz.OwnerID != caller.ID {
		return nil, apperr.Forbidden("FORBIDDEN", "only the quiz owner may add questions")
	}

	qType := req.Type
	if qType == "" {
		qType = model.QuestionTypeMultipleChoice
	}
	points := req.Points
	if points == 0 {
		points = 1
	}
	correct := -1
	if req.CorrectAnswer != nil {
		correct = *req.CorrectAnswer
	}
	if err := validateQuestionPayload(req.Text, req.Options, correct, points, qType); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizID:        req.QuizID,
		Text:          strings.TrimSpace(req.Text),
		Options:       req.Options,
		CorrectAnswer: correct,
		Points:        points,
		Type:          qType,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, apperr.From(err)
	}
	return question, nil
}

// Get returns the question plus whether the caller owns the parent quiz, so
// the controller can strip the correct answer for non-owners.
func (s *questionService) Get(caller *model.User, id uint) (*model.Question, bool, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, false, apperr.NotFound("QUESTION_NOT_FOUND", "question not found")
	}
	quiz, err := s.quizRepo.GetByID(question.QuizID)
	if err != nil {
		return nil, false, apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}
	isOwner := quiz.OwnerID == caller.ID
	if !isOwner && quiz.InstitutionOnly && quiz.InstitutionID != caller.InstitutionID {
		return nil, false, apperr.Forbidden("ACCESS_DENIED", "this quiz is restricted to its institution")
	}
	return question, isOwner, nil
}

func (s *questionService) Update(caller *model.User, id uint, req *QuestionRequest) (*model.Question, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("QUESTION_NOT_FOUND", "question not found")
	}
	quiz, err := s.quizRepo.GetByID(question.QuizID)
	if err != nil {
		return nil, apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}
	if quiz.OwnerID != caller.ID {
		return nil, apperr.Forbidden("FORBIDDEN", "only the quiz owner may edit questions")
	}

	if strings.TrimSpace(req.Text) != "" {
		question.Text = strings.TrimSpace(req.Text)
	}
	if req.Options != nil {
		question.Options = req.Options
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Points != 0 {
		question.Points = req.Points
	}
	if req.Type != "" {
		question.Type = req.Type
	}
	if err := validateQuestionPayload(question.Text, question.Options, question.CorrectAnswer,
		question.Points, question.Type); err != nil {
		return nil, err
	}

	if err := s.questionRepo.Update(question); err != nil {
		return nil, apperr.From(err)
	}
	return question, nil
}

func (s *questionService) Delete(caller *model.User, id uint) error {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return apperr.NotFound("QUESTION_NOT_FOUND", "question not found")
	}
	quiz, err := s.quizRepo.GetByID(question.QuizID)
	if err != nil {
		return apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}
	if quiz.OwnerID != caller.ID {
		return apperr.Forbidden("FORBIDDEN", "only the quiz owner may delete questions")
	}

	if err := s.questionRepo.Delete(id, question.QuizID); err != nil {
		return apperr.From(err)
	}
	return nil
}
