package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/service"
	"quizhive-backend/utilities"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// Submit grades and records a quiz attempt for the caller.
func (ac *AttemptController) Submit(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	var req service.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid attempt payload"))
		return
	}
	attempt, err := ac.attemptService.Submit(user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "attempt recorded", attempt)
}

// ListOwn returns the caller's attempt history; the path user id must match
// the authenticated user.
func (ac *AttemptController) ListOwn(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	attempts, err := ac.attemptService.ListOwn(user, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "attempts fetched", attempts)
}

// ListForQuiz returns every attempt on a quiz to its owner.
func (ac *AttemptController) ListForQuiz(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}
	page, limit, offset := pagination(c)
	attempts, total, err := ac.attemptService.ListForQuiz(user, quizID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "attempts fetched", attempts, page, limit, total)
}
