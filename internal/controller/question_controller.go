package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/service"
	"quizhive-backend/utilities"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

func (qc *QuestionController) Create(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	var req service.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid question payload"))
		return
	}
	question, err := qc.questionService.Create(user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "question created", question)
}

func (qc *QuestionController) Get(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	question, isOwner, err := qc.questionService.Get(user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if isOwner {
		respond(c, http.StatusOK, "question fetched", question)
		return
	}
	respond(c, http.StatusOK, "question fetched", question.View())
}

func (qc *QuestionController) Update(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid question payload"))
		return
	}
	question, err := qc.questionService.Update(user, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "question updated", question)
}

func (qc *QuestionController) Delete(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := qc.questionService.Delete(user, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "question deleted", nil)
}
