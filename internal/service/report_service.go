package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/model"
)

type ReportService interface {
	QuizSummaryPDF(caller *model.User, quizID uint) ([]byte, string, error)
}

type reportService struct {
	stats StatsService
}

func NewReportService(stats StatsService) ReportService {
	return &reportService{stats: stats}
}

// QuizSummaryPDF renders the owner-only quiz summary as a downloadable PDF
// and returns the document bytes plus a suggested filename.
func (s *reportService) QuizSummaryPDF(caller *model.User, quizID uint) ([]byte, string, error) {
	summary, quiz, err := s.stats.QuizSummary(caller, quizID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Quiz Report: %s", quiz.Name))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s", time.Now().UTC().Format("2006-01-02 15:04 MST")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	rows := []string{
		fmt.Sprintf("Total attempts: %d", summary.TotalAttempts),
		fmt.Sprintf("Average score: %.2f / %d", summary.AverageScore, quiz.TotalPoints),
		fmt.Sprintf("Average percentage: %.2f%%", summary.AveragePercentage),
		fmt.Sprintf("Highest score: %d", summary.HighestScore),
		fmt.Sprintf("Lowest score: %d", summary.LowestScore),
		fmt.Sprintf("Average time spent: %.2f s", summary.AverageTimeSpent),
	}
	for _, row := range rows {
		pdf.Cell(0, 7, row)
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Score distribution")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, band := range summary.ScoreDistribution {
		pdf.Cell(0, 7, fmt.Sprintf("%s (%s): %d", band.Band, band.Range, band.Count))
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", apperr.Internal("failed to render report")
	}
	filename := fmt.Sprintf("quiz-%d-report.pdf", quiz.ID)
	return buf.Bytes(), filename, nil
}
