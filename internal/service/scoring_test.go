package service

import (
	"testing"

	"gorm.io/datatypes"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/model"
)

func twoQuestionQuiz() []model.Question {
	return []model.Question{
		{
			ID:            1,
			QuizID:        7,
			Text:          "pick b",
			Options:       datatypes.JSONSlice[string]{"a", "b", "c", "d"},
			CorrectAnswer: 1,
			Points:        4,
			Type:          model.QuestionTypeMultipleChoice,
		},
		{
			ID:            2,
			QuizID:        7,
			Text:          "true or false",
			Options:       datatypes.JSONSlice[string]{"true", "false"},
			CorrectAnswer: 0,
			Points:        6,
			Type:          model.QuestionTypeTrueFalse,
		},
	}
}

func TestValidateAnswersAcceptsAnyOrder(t *testing.T) {
	questions := twoQuestionQuiz()
	answers := []SubmittedAnswer{
		{QuestionID: 2, SelectedAnswerIndex: 0},
		{QuestionID: 1, SelectedAnswerIndex: 3},
	}
	if err := validateAnswers(questions, answers); err != nil {
		t.Fatalf("expected submission order to be irrelevant, got %v", err)
	}
}

func TestValidateAnswersCountMismatch(t *testing.T) {
	questions := twoQuestionQuiz()
	answers := []SubmittedAnswer{{QuestionID: 1, SelectedAnswerIndex: 0}}
	err := validateAnswers(questions, answers)
	if !apperr.Is(err, "INVALID_ANSWERS") {
		t.Fatalf("expected INVALID_ANSWERS, got %v", err)
	}
}

func TestValidateAnswersUnknownQuestion(t *testing.T) {
	questions := twoQuestionQuiz()
	answers := []SubmittedAnswer{
		{QuestionID: 1, SelectedAnswerIndex: 0},
		{QuestionID: 99, SelectedAnswerIndex: 0},
	}
	err := validateAnswers(questions, answers)
	if !apperr.Is(err, "INVALID_ANSWERS") {
		t.Fatalf("expected INVALID_ANSWERS, got %v", err)
	}
}

func TestValidateAnswersDuplicateQuestion(t *testing.T) {
	questions := twoQuestionQuiz()
	answers := []SubmittedAnswer{
		{QuestionID: 1, SelectedAnswerIndex: 0},
		{QuestionID: 1, SelectedAnswerIndex: 1},
	}
	err := validateAnswers(questions, answers)
	if !apperr.Is(err, "INVALID_ANSWERS") {
		t.Fatalf("expected INVALID_ANSWERS, got %v", err)
	}
}

func TestValidateAnswersOutOfRangeIndex(t *testing.T) {
	questions := twoQuestionQuiz()
	for _, idx := range []int{-1, 2} {
		answers := []SubmittedAnswer{
			{QuestionID: 1, SelectedAnswerIndex: 0},
			{QuestionID: 2, SelectedAnswerIndex: idx},
		}
		err := validateAnswers(questions, answers)
		if !apperr.Is(err, "INVALID_ANSWERS") {
			t.Fatalf("index %d: expected INVALID_ANSWERS, got %v", idx, err)
		}
	}
}

func TestGradeAnswersPartialCredit(t *testing.T) {
	questions := twoQuestionQuiz()
	answers := []SubmittedAnswer{
		{QuestionID: 1, SelectedAnswerIndex: 1},
		{QuestionID: 2, SelectedAnswerIndex: 1},
	}
	graded, score := gradeAnswers(questions, answers)

	if score != 4 {
		t.Fatalf("expected score 4, got %d", score)
	}
	if len(graded) != 2 {
		t.Fatalf("expected 2 graded answers, got %d", len(graded))
	}
	if !graded[0].IsCorrect || graded[0].PointsEarned != 4 {
		t.Fatalf("first answer should earn 4 points, got %+v", graded[0])
	}
	if graded[1].IsCorrect || graded[1].PointsEarned != 0 {
		t.Fatalf("second answer should earn nothing, got %+v", graded[1])
	}

	if pct := percentageOf(score, 10); pct != 40.00 {
		t.Fatalf("expected 40.00 percent, got %v", pct)
	}
}

func TestGradeAnswersPreservesSubmissionOrder(t *testing.T) {
	questions := twoQuestionQuiz()
	answers := []SubmittedAnswer{
		{QuestionID: 2, SelectedAnswerIndex: 0},
		{QuestionID: 1, SelectedAnswerIndex: 1},
	}
	graded, score := gradeAnswers(questions, answers)

	if score != 10 {
		t.Fatalf("expected full score 10, got %d", score)
	}
	if graded[0].QuestionID != 2 || graded[1].QuestionID != 1 {
		t.Fatalf("graded answers should keep submission order, got %+v", graded)
	}
}

func TestPercentageOf(t *testing.T) {
	cases := []struct {
		score, total int
		want         float64
	}{
		{4, 10, 40},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{10, 10, 100},
		{0, 10, 0},
		{5, 0, 0}, // a quiz with no points cannot be failed or passed
	}
	for _, tc := range cases {
		if got := percentageOf(tc.score, tc.total); got != tc.want {
			t.Fatalf("percentageOf(%d, %d) = %v, want %v", tc.score, tc.total, got, tc.want)
		}
	}
}

func TestStarsForPercentage(t *testing.T) {
	cases := []struct {
		pct  float64
		want int
	}{
		{100, 5},
		{90, 5},
		{89.99, 4},
		{82.5, 4},
		{80, 4},
		{70, 3},
		{60, 2},
		{50.0, 1},
		{49.9, 0},
		{0, 0},
	}
	for _, tc := range cases {
		if got := starsForPercentage(tc.pct); got != tc.want {
			t.Fatalf("starsForPercentage(%v) = %d, want %d", tc.pct, got, tc.want)
		}
	}
}

func TestScoreBand(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{95, "A"},
		{90, "A"},
		{89.99, "B"},
		{75, "C"},
		{60, "D"},
		{55, "E"},
		{49.99, "F"},
	}
	for _, tc := range cases {
		if got := scoreBand(tc.pct); got != tc.want {
			t.Fatalf("scoreBand(%v) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}
