package service

import (
	"context"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/cache"
	"quizhive-backend/internal/model"
	"quizhive-backend/internal/repository"
)

// LeaderboardPage is one computed, cacheable slice of a leaderboard.
type LeaderboardPage struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int64              `json:"total"`
}

// DashboardStats is the self-only dashboard snapshot.
type DashboardStats struct {
	TotalAttempts    int             `json:"total_attempts"`
	AverageScore     float64         `json:"average_score"`
	BestScore        float64         `json:"best_score"`
	StarsGathered    int             `json:"stars_gathered"`
	GlobalRank       int64           `json:"global_rank"`
	AvailableQuizzes int64           `json:"available_quizzes"`
	RecentAttempts   []model.Attempt `json:"recent_attempts"`
}

type StatsService interface {
	QuizSummary(caller *model.User, quizID uint) (*QuizSummary, *model.Quiz, error)
	GlobalLeaderboard(ctx context.Context, streamID, institutionID uint, offset, limit int) (*LeaderboardPage, error)
	StreamLeaderboard(ctx context.Context, streamID uint, offset, limit int) (*LeaderboardPage, error)
	Dashboard(caller *model.User) (*DashboardStats, error)
}

type statsService struct {
	attemptRepo repository.AttemptRepository
	quizRepo    repository.QuizRepository
	userRepo    repository.UserRepository
	streamRepo  repository.StreamRepository
	lbCache     *cache.LeaderboardCache
}

func NewStatsService(attemptRepo repository.AttemptRepository, quizRepo repository.QuizRepository,
	userRepo repository.UserRepository, streamRepo repository.StreamRepository,
	lbCache *cache.LeaderboardCache) StatsService {
	return &statsService{
		attemptRepo: attemptRepo,
		quizRepo:    quizRepo,
		userRepo:    userRepo,
		streamRepo:  streamRepo,
		lbCache:     lbCache,
	}
}

// QuizSummary aggregates every attempt on a quiz the caller owns.
func (s *statsService) QuizSummary(caller *model.User, quizID uint) (*QuizSummary, *model.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, nil, apperr.NotFound("QUIZ_NOT_FOUND", "quiz not found")
	}
	if quiz.OwnerID != caller.ID {
		return nil, nil, apperr.Forbidden("FORBIDDEN", "only the quiz owner may view its statistics")
	}

	attempts, err := s.attemptRepo.ListAllByQuiz(quizID)
	if err != nil {
		return nil, nil, apperr.From(err)
	}
	summary := summarizeAttempts(attempts)
	return &summary, quiz, nil
}

// GlobalLeaderboard ranks users by (stars, average, best), optionally
// filtered by stream and/or institution. Pages are cached briefly in redis.
func (s *statsService) GlobalLeaderboard(ctx context.Context, streamID, institutionID uint, offset, limit int) (*LeaderboardPage, error) {
	key := s.lbCache.Key("global", streamID, institutionID, offset, limit)
	var cached LeaderboardPage
	if s.lbCache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	users, err := s.userRepo.ListUsers(streamID, institutionID)
	if err != nil {
		return nil, apperr.From(err)
	}
	attempts, err := s.attemptRepo.ListAll()
	if err != nil {
		return nil, apperr.From(err)
	}

	entries := buildLeaderboard(users, attempts, true)
	page := &LeaderboardPage{
		Entries: paginateLeaderboard(entries, offset, limit),
		Total:   int64(len(entries)),
	}
	s.lbCache.Set(ctx, key, page)
	return page, nil
}

// StreamLeaderboard restricts the joined attempts to quizzes of one stream
// and ranks by (stars, stream average).
func (s *statsService) StreamLeaderboard(ctx context.Context, streamID uint, offset, limit int) (*LeaderboardPage, error) {
	if _, err := s.streamRepo.GetByID(streamID); err != nil {
		return nil, apperr.NotFound("STREAM_NOT_FOUND", "stream not found")
	}

	key := s.lbCache.Key("stream", streamID, offset, limit)
	var cached LeaderboardPage
	if s.lbCache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	users, err := s.userRepo.ListUsers(streamID, 0)
	if err != nil {
		return nil, apperr.From(err)
	}
	attempts, err := s.attemptRepo.ListByStream(streamID)
	if err != nil {
		return nil, apperr.From(err)
	}

	entries := buildLeaderboard(users, attempts, false)
	page := &LeaderboardPage{
		Entries: paginateLeaderboard(entries, offset, limit),
		Total:   int64(len(entries)),
	}
	s.lbCache.Set(ctx, key, page)
	return page, nil
}

// Dashboard combines the caller's own aggregates, their five most recent
// attempts, a fully deterministic global rank and the count of quizzes they
// could take right now. Everything degrades to zeroes on empty data.
func (s *statsService) Dashboard(caller *model.User) (*DashboardStats, error) {
	attempts, err := s.attemptRepo.ListByUser(caller.ID)
	if err != nil {
		return nil, apperr.From(err)
	}

	stats := &DashboardStats{
		StarsGathered:  caller.StarsGathered,
		RecentAttempts: []model.Attempt{},
	}
	var pctSum float64
	for _, a := range attempts {
		stats.TotalAttempts++
		pctSum += a.Percentage
		if a.Percentage > stats.BestScore {
			stats.BestScore = a.Percentage
		}
	}
	if stats.TotalAttempts > 0 {
		stats.AverageScore = round2(pctSum / float64(stats.TotalAttempts))
	}

	recent, err := s.attemptRepo.ListRecentByUser(caller.ID, 5)
	if err != nil {
		return nil, apperr.From(err)
	}
	if recent != nil {
		stats.RecentAttempts = recent
	}

	// Rank: users with strictly more stars, then equal-star users with a
	// smaller id, then this user. Deterministic, never tied.
	higher, err := s.userRepo.CountWithMoreStars(caller.StarsGathered)
	if err != nil {
		return nil, apperr.From(err)
	}
	equalSmaller, err := s.userRepo.CountWithEqualStarsSmallerID(caller.StarsGathered, caller.ID)
	if err != nil {
		return nil, apperr.From(err)
	}
	stats.GlobalRank = higher + equalSmaller + 1

	if caller.StreamID != 0 {
		available, err := s.quizRepo.CountAvailable(caller.StreamID, caller.InstitutionID)
		if err != nil {
			return nil, apperr.From(err)
		}
		stats.AvailableQuizzes = available
	}

	return stats, nil
}
