package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/model"
	"quizhive-backend/internal/service"
	"quizhive-backend/utilities"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

func (qc *QuizController) Create(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	var req service.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid quiz payload"))
		return
	}
	quiz, err := qc.quizService.Create(user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "quiz created", quiz)
}

func (qc *QuizController) Get(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	quiz, err := qc.quizService.Get(user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "quiz fetched", quiz)
}

func (qc *QuizController) Update(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid quiz payload"))
		return
	}
	quiz, err := qc.quizService.Update(user, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "quiz updated", quiz)
}

func (qc *QuizController) Delete(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := qc.quizService.Delete(user, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "quiz deleted", nil)
}

// ListByStream returns the quizzes of a stream that are visible to the
// caller (active, public or same-institution).
func (qc *QuizController) ListByStream(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	streamID, ok := pathID(c, "streamId")
	if !ok {
		return
	}
	page, limit, offset := pagination(c)
	quizzes, total, err := qc.quizService.ListVisibleByStream(user, streamID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "quizzes fetched", quizzes, page, limit, total)
}

// ListQuestions strips the correct answer from every question unless the
// caller owns the quiz.
func (qc *QuizController) ListQuestions(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}
	questions, isOwner, err := qc.quizService.ListQuestions(user, quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	if isOwner {
		respond(c, http.StatusOK, "questions fetched", questions)
		return
	}
	views := make([]model.QuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, questions[i].View())
	}
	respond(c, http.StatusOK, "questions fetched", views)
}
