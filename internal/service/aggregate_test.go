package service

import (
	"testing"

	"quizhive-backend/internal/model"
)

func TestSummarizeAttemptsEmpty(t *testing.T) {
	summary := summarizeAttempts(nil)

	if summary.TotalAttempts != 0 {
		t.Fatalf("expected 0 attempts, got %d", summary.TotalAttempts)
	}
	if summary.AverageScore != 0 || summary.HighestScore != 0 || summary.LowestScore != 0 {
		t.Fatalf("expected zeroed stats, got %+v", summary)
	}
	if len(summary.ScoreDistribution) != 6 {
		t.Fatalf("expected all 6 bands present, got %d", len(summary.ScoreDistribution))
	}
	for _, bc := range summary.ScoreDistribution {
		if bc.Count != 0 {
			t.Fatalf("band %s should be empty, got %d", bc.Band, bc.Count)
		}
	}
}

func TestSummarizeAttempts(t *testing.T) {
	attempts := []model.Attempt{
		{Score: 9, Percentage: 90, TimeSpentSeconds: 60},
		{Score: 7, Percentage: 70, TimeSpentSeconds: 120},
		{Score: 4, Percentage: 40, TimeSpentSeconds: 90},
	}
	summary := summarizeAttempts(attempts)

	if summary.TotalAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", summary.TotalAttempts)
	}
	if summary.AverageScore != 6.67 {
		t.Fatalf("expected average score 6.67, got %v", summary.AverageScore)
	}
	if summary.AveragePercentage != 66.67 {
		t.Fatalf("expected average percentage 66.67, got %v", summary.AveragePercentage)
	}
	if summary.HighestScore != 9 || summary.LowestScore != 4 {
		t.Fatalf("expected high 9 low 4, got high %d low %d", summary.HighestScore, summary.LowestScore)
	}
	if summary.AverageTimeSpent != 90 {
		t.Fatalf("expected average time 90, got %v", summary.AverageTimeSpent)
	}

	want := map[string]int{"A": 1, "B": 0, "C": 1, "D": 0, "E": 0, "F": 1}
	for i, bc := range summary.ScoreDistribution {
		if bc.Count != want[bc.Band] {
			t.Fatalf("band %s: expected %d, got %d", bc.Band, want[bc.Band], bc.Count)
		}
		// Bands come back in fixed A-F order.
		if i > 0 && summary.ScoreDistribution[i-1].Band > bc.Band {
			t.Fatalf("distribution out of order: %s before %s", summary.ScoreDistribution[i-1].Band, bc.Band)
		}
	}
}

func TestBuildLeaderboardOrdering(t *testing.T) {
	users := []model.User{
		{ID: 1, Name: "ann", StarsGathered: 10},
		{ID: 2, Name: "bob", StarsGathered: 25},
		{ID: 3, Name: "cat", StarsGathered: 10},
		{ID: 4, Name: "dan", StarsGathered: 10},
	}
	attempts := []model.Attempt{
		{UserID: 1, Percentage: 80},
		{UserID: 1, Percentage: 40}, // avg 60, best 80
		{UserID: 3, Percentage: 60}, // avg 60, best 60
		{UserID: 4, Percentage: 90}, // avg 90, best 90
	}

	entries := buildLeaderboard(users, attempts, true)

	wantOrder := []uint{2, 4, 1, 3}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Fatalf("position %d: expected user %d, got %d", i, want, entries[i].UserID)
		}
	}

	// Stars dominate regardless of scores.
	if entries[0].TotalAttempts != 0 {
		t.Fatalf("user 2 has no attempts, got %d", entries[0].TotalAttempts)
	}
	// Equal stars and average fall through to best score.
	if entries[2].UserID != 1 || entries[2].BestScore != 80 {
		t.Fatalf("expected user 1 ahead on best score, got %+v", entries[2])
	}
}

func TestBuildLeaderboardWithoutBestTiebreak(t *testing.T) {
	users := []model.User{
		{ID: 5, StarsGathered: 10},
		{ID: 6, StarsGathered: 10},
	}
	attempts := []model.Attempt{
		{UserID: 5, Percentage: 80},
		{UserID: 5, Percentage: 40}, // avg 60, best 80
		{UserID: 6, Percentage: 60}, // avg 60, best 60
	}

	// Best score is ignored; the id decides.
	entries := buildLeaderboard(users, attempts, false)
	if entries[0].UserID != 5 || entries[1].UserID != 6 {
		t.Fatalf("expected id ascending on full tie, got %d then %d", entries[0].UserID, entries[1].UserID)
	}
}

func TestBuildLeaderboardIsDeterministic(t *testing.T) {
	users := []model.User{
		{ID: 3, StarsGathered: 5},
		{ID: 1, StarsGathered: 5},
		{ID: 2, StarsGathered: 5},
	}

	first := buildLeaderboard(users, nil, true)
	for i := 0; i < 10; i++ {
		again := buildLeaderboard(users, nil, true)
		for j := range first {
			if first[j].UserID != again[j].UserID {
				t.Fatalf("run %d: ordering changed at position %d", i, j)
			}
		}
	}
	// Full ties resolve by id, so ranks are stable across identical queries.
	if first[0].UserID != 1 || first[1].UserID != 2 || first[2].UserID != 3 {
		t.Fatalf("expected 1,2,3 on full tie, got %+v", first)
	}
}

func TestPaginateLeaderboard(t *testing.T) {
	entries := make([]LeaderboardEntry, 5)
	for i := range entries {
		entries[i].UserID = uint(i + 1)
	}

	page := paginateLeaderboard(entries, 2, 2)
	if len(page) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page))
	}
	if page[0].Rank != 3 || page[1].Rank != 4 {
		t.Fatalf("ranks must continue across pages, got %d and %d", page[0].Rank, page[1].Rank)
	}
	if page[0].UserID != 3 {
		t.Fatalf("expected user 3 first on page, got %d", page[0].UserID)
	}

	tail := paginateLeaderboard(entries, 4, 10)
	if len(tail) != 1 || tail[0].Rank != 5 {
		t.Fatalf("expected single rank-5 row, got %+v", tail)
	}

	if got := paginateLeaderboard(entries, 99, 10); len(got) != 0 {
		t.Fatalf("offset past the end should yield an empty page, got %d rows", len(got))
	}
}
