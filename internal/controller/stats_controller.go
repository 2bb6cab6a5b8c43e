package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/service"
	"quizhive-backend/utilities"
)

type StatsController struct {
	statsService  service.StatsService
	reportService service.ReportService
}

func NewStatsController(statsService service.StatsService, reportService service.ReportService) *StatsController {
	return &StatsController{statsService: statsService, reportService: reportService}
}

// QuizSummary returns the owner-only aggregate statistics for one quiz.
func (sc *StatsController) QuizSummary(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}
	summary, quiz, err := sc.statsService.QuizSummary(user, quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "summary fetched", gin.H{
		"quiz_id": quiz.ID,
		"name":    quiz.Name,
		"summary": summary,
	})
}

// QuizSummaryReport streams the summary as a PDF download.
func (sc *StatsController) QuizSummaryReport(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}
	pdfBytes, filename, err := sc.reportService.QuizSummaryPDF(user, quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// Leaderboard serves the global ranking, optionally filtered by stream
// and/or institution via query parameters.
func (sc *StatsController) Leaderboard(c *gin.Context) {
	page, limit, offset := pagination(c)
	streamID := queryUint(c, "stream")
	institutionID := queryUint(c, "institution")

	lb, err := sc.statsService.GlobalLeaderboard(c.Request.Context(), streamID, institutionID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "leaderboard fetched", lb.Entries, page, limit, lb.Total)
}

// StreamLeaderboard ranks only attempts on quizzes of one stream.
func (sc *StatsController) StreamLeaderboard(c *gin.Context) {
	streamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, limit, offset := pagination(c)
	lb, err := sc.statsService.StreamLeaderboard(c.Request.Context(), streamID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "stream leaderboard fetched", lb.Entries, page, limit, lb.Total)
}

// Dashboard returns the caller's own snapshot.
func (sc *StatsController) Dashboard(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	stats, err := sc.statsService.Dashboard(user)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "dashboard fetched", stats)
}

func queryUint(c *gin.Context, name string) uint {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
