package service

import (
	"fmt"
	"math"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/model"
)

// SubmittedAnswer is the client's answer to one question.
type SubmittedAnswer struct {
	QuestionID          uint `json:"question_id"`
	SelectedAnswerIndex int  `json:"selected_answer_index"`
}

// validateAnswers checks a submission against the authoritative question set.
// Answers are paired by question id, so the order in which questions were
// fetched or submitted is irrelevant; every live question must be answered
// exactly once and every selected index must be inside the question's option
// range. Violations report the 1-based position of the offending answer.
func validateAnswers(questions []model.Question, answers []SubmittedAnswer) error {
	if len(answers) != len(questions) {
		return apperr.Validation("INVALID_ANSWERS",
			fmt.Sprintf("expected %d answers, got %d", len(questions), len(answers)))
	}

	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	seen := make(map[uint]bool, len(answers))
	for i, ans := range answers {
		question, ok := byID[ans.QuestionID]
		if !ok {
			return apperr.Validation("INVALID_ANSWERS",
				fmt.Sprintf("answer %d references an unknown question", i+1))
		}
		if seen[ans.QuestionID] {
			return apperr.Validation("INVALID_ANSWERS",
				fmt.Sprintf("answer %d repeats a question already answered", i+1))
		}
		seen[ans.QuestionID] = true
		if ans.SelectedAnswerIndex < 0 || ans.SelectedAnswerIndex >= len(question.Options) {
			return apperr.Validation("INVALID_ANSWERS",
				fmt.Sprintf("answer %d has an out-of-range option index", i+1))
		}
	}
	return nil
}

// gradeAnswers grades a validated submission, preserving submission order in
// the returned answer list.
func gradeAnswers(questions []model.Question, answers []SubmittedAnswer) ([]model.AttemptAnswer, int) {
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	graded := make([]model.AttemptAnswer, 0, len(answers))
	score := 0
	for _, ans := range answers {
		question := byID[ans.QuestionID]
		correct := ans.SelectedAnswerIndex == question.CorrectAnswer
		earned := 0
		if correct {
			earned = question.Points
			score += earned
		}
		graded = append(graded, model.AttemptAnswer{
			QuestionID:          ans.QuestionID,
			SelectedAnswerIndex: ans.SelectedAnswerIndex,
			IsCorrect:           correct,
			PointsEarned:        earned,
		})
	}
	return graded, score
}

// percentageOf returns score/total as a percentage rounded to two decimals,
// or 0 when total is 0.
func percentageOf(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(score) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// starsForPercentage maps a percentage to the reward band:
// [90,100]→5 [80,90)→4 [70,80)→3 [60,70)→2 [50,60)→1 <50→0.
func starsForPercentage(percentage float64) int {
	switch {
	case percentage >= 90:
		return 5
	case percentage >= 80:
		return 4
	case percentage >= 70:
		return 3
	case percentage >= 60:
		return 2
	case percentage >= 50:
		return 1
	default:
		return 0
	}
}

// scoreBand buckets a percentage into the fixed A-F report bands.
func scoreBand(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	case percentage >= 50:
		return "E"
	default:
		return "F"
	}
}
