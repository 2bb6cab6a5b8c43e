package service

import (
	"sort"

	"quizhive-backend/internal/model"
)

// BandCount is one bucket of the fixed A-F score distribution.
type BandCount struct {
	Band  string `json:"band"`
	Range string `json:"range"`
	Count int    `json:"count"`
}

// QuizSummary aggregates every attempt made on one quiz.
type QuizSummary struct {
	TotalAttempts     int         `json:"total_attempts"`
	AverageScore      float64     `json:"average_score"`
	AveragePercentage float64     `json:"average_percentage"`
	HighestScore      int         `json:"highest_score"`
	LowestScore       int         `json:"lowest_score"`
	AverageTimeSpent  float64     `json:"average_time_spent"`
	ScoreDistribution []BandCount `json:"score_distribution"`
}

var bandRanges = map[string]string{
	"A": "90-100",
	"B": "80-89",
	"C": "70-79",
	"D": "60-69",
	"E": "50-59",
	"F": "<50",
}

// summarizeAttempts reduces a quiz's attempts to summary statistics. Zero
// attempts yield zeroed stats and an empty-count distribution, never an error.
func summarizeAttempts(attempts []model.Attempt) QuizSummary {
	counts := map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "E": 0, "F": 0}

	summary := QuizSummary{}
	var scoreSum, timeSum int
	var pctSum float64
	for i, a := range attempts {
		scoreSum += a.Score
		timeSum += a.TimeSpentSeconds
		pctSum += a.Percentage
		counts[scoreBand(a.Percentage)]++
		if i == 0 || a.Score > summary.HighestScore {
			summary.HighestScore = a.Score
		}
		if i == 0 || a.Score < summary.LowestScore {
			summary.LowestScore = a.Score
		}
	}

	summary.TotalAttempts = len(attempts)
	if len(attempts) > 0 {
		n := float64(len(attempts))
		summary.AverageScore = round2(float64(scoreSum) / n)
		summary.AveragePercentage = round2(pctSum / n)
		summary.AverageTimeSpent = round2(float64(timeSum) / n)
	}

	bands := make([]string, 0, len(counts))
	for band := range counts {
		bands = append(bands, band)
	}
	sort.Strings(bands)
	for _, band := range bands {
		summary.ScoreDistribution = append(summary.ScoreDistribution, BandCount{
			Band:  band,
			Range: bandRanges[band],
			Count: counts[band],
		})
	}
	return summary
}

// LeaderboardEntry is one ranked row of a leaderboard.
type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	UserID        uint    `json:"user_id"`
	Name          string  `json:"name"`
	StarsGathered int     `json:"stars_gathered"`
	TotalAttempts int     `json:"total_attempts"`
	AverageScore  float64 `json:"average_score"`
	BestScore     float64 `json:"best_score"`
}

// userAttemptStats is the per-user reduction of a set of attempts.
type userAttemptStats struct {
	totalAttempts int
	pctSum        float64
	bestPct       float64
}

func reduceByUser(attempts []model.Attempt) map[uint]*userAttemptStats {
	byUser := make(map[uint]*userAttemptStats)
	for _, a := range attempts {
		stats, ok := byUser[a.UserID]
		if !ok {
			stats = &userAttemptStats{}
			byUser[a.UserID] = stats
		}
		stats.totalAttempts++
		stats.pctSum += a.Percentage
		if a.Percentage > stats.bestPct {
			stats.bestPct = a.Percentage
		}
	}
	return byUser
}

// buildLeaderboard joins users with the (possibly pre-filtered) attempt set
// and sorts by (stars desc, averageScore desc, bestScore desc, id asc). The
// stream leaderboard passes useBestTiebreak=false and sorts by
// (stars desc, streamAverageScore desc, id asc). The trailing id comparison
// makes the ordering a total order, so repeated identical queries return
// identical rankings. Ranks are positional and never tied; they are assigned
// by the caller after pagination.
func buildLeaderboard(users []model.User, attempts []model.Attempt, useBestTiebreak bool) []LeaderboardEntry {
	byUser := reduceByUser(attempts)

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entry := LeaderboardEntry{
			UserID:        u.ID,
			Name:          u.Name,
			StarsGathered: u.StarsGathered,
		}
		if stats, ok := byUser[u.ID]; ok && stats.totalAttempts > 0 {
			entry.TotalAttempts = stats.totalAttempts
			entry.AverageScore = round2(stats.pctSum / float64(stats.totalAttempts))
			entry.BestScore = round2(stats.bestPct)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].StarsGathered != entries[j].StarsGathered {
			return entries[i].StarsGathered > entries[j].StarsGathered
		}
		if entries[i].AverageScore != entries[j].AverageScore {
			return entries[i].AverageScore > entries[j].AverageScore
		}
		if useBestTiebreak && entries[i].BestScore != entries[j].BestScore {
			return entries[i].BestScore > entries[j].BestScore
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}

// paginateLeaderboard slices a sorted leaderboard and assigns positional
// ranks (skip + index + 1).
func paginateLeaderboard(entries []LeaderboardEntry, offset, limit int) []LeaderboardEntry {
	if offset >= len(entries) {
		return []LeaderboardEntry{}
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	page := make([]LeaderboardEntry, end-offset)
	copy(page, entries[offset:end])
	for i := range page {
		page[i].Rank = offset + i + 1
	}
	return page
}
