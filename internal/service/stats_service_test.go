package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/cache"
	"quizhive-backend/internal/model"
)

type statsFixture struct {
	service     StatsService
	quizRepo    *fakeQuizRepo
	attemptRepo *fakeAttemptRepo
	userRepo    *fakeUserRepo
	streamRepo  *fakeStreamRepo
}

func newStatsFixture(lbCache *cache.LeaderboardCache) *statsFixture {
	quizRepo := &fakeQuizRepo{quizzes: map[uint]*model.Quiz{
		7: {ID: 7, OwnerID: 100, StreamID: 3, Name: "algorithms", TotalPoints: 10},
	}}
	attemptRepo := &fakeAttemptRepo{byStream: map[uint][]model.Attempt{}}
	userRepo := &fakeUserRepo{stars: map[uint]int{}}
	streamRepo := &fakeStreamRepo{streams: map[uint]*model.Stream{
		3: {ID: 3, Name: "Computer Science"},
	}}

	return &statsFixture{
		service:     NewStatsService(attemptRepo, quizRepo, userRepo, streamRepo, lbCache),
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
		streamRepo:  streamRepo,
	}
}

func TestQuizSummaryOwnerGate(t *testing.T) {
	fx := newStatsFixture(nil)
	fx.attemptRepo.attempts = []model.Attempt{
		{QuizID: 7, UserID: 1, Score: 9, Percentage: 90},
		{QuizID: 7, UserID: 2, Score: 5, Percentage: 50},
	}

	owner := &model.User{ID: 100}
	summary, quiz, err := fx.service.QuizSummary(owner, 7)
	if err != nil {
		t.Fatalf("summary failed for owner: %v", err)
	}
	if quiz.ID != 7 {
		t.Fatalf("wrong quiz returned: %d", quiz.ID)
	}
	if summary.TotalAttempts != 2 || summary.HighestScore != 9 || summary.LowestScore != 5 {
		t.Fatalf("summary wrong: %+v", summary)
	}

	stranger := &model.User{ID: 1}
	if _, _, err := fx.service.QuizSummary(stranger, 7); !apperr.Is(err, "FORBIDDEN") {
		t.Fatalf("expected FORBIDDEN for non-owner, got %v", err)
	}

	if _, _, err := fx.service.QuizSummary(owner, 99); !apperr.Is(err, "QUIZ_NOT_FOUND") {
		t.Fatalf("expected QUIZ_NOT_FOUND, got %v", err)
	}
}

func TestGlobalLeaderboardFiltersAndPaginates(t *testing.T) {
	fx := newStatsFixture(nil)
	fx.userRepo.users = []model.User{
		{ID: 1, Name: "ann", StreamID: 3, StarsGathered: 10},
		{ID: 2, Name: "bob", StreamID: 3, StarsGathered: 30},
		{ID: 3, Name: "cat", StreamID: 4, StarsGathered: 20},
	}
	ctx := context.Background()

	page, err := fx.service.GlobalLeaderboard(ctx, 0, 0, 0, 10)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected 3 ranked users, got %d", page.Total)
	}
	if page.Entries[0].UserID != 2 || page.Entries[0].Rank != 1 {
		t.Fatalf("expected user 2 at rank 1, got %+v", page.Entries[0])
	}

	// Stream filter drops user 3 but keeps global ranks positional.
	filtered, err := fx.service.GlobalLeaderboard(ctx, 3, 0, 0, 10)
	if err != nil {
		t.Fatalf("filtered leaderboard failed: %v", err)
	}
	if filtered.Total != 2 || filtered.Entries[1].UserID != 1 {
		t.Fatalf("stream filter wrong: %+v", filtered)
	}

	// Second page continues the rank sequence.
	second, err := fx.service.GlobalLeaderboard(ctx, 0, 0, 2, 2)
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}
	if len(second.Entries) != 1 || second.Entries[0].Rank != 3 {
		t.Fatalf("expected single rank-3 row, got %+v", second.Entries)
	}
}

func TestGlobalLeaderboardUsesCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	fx := newStatsFixture(cache.NewLeaderboardCache(client, 30*time.Second))
	fx.userRepo.users = []model.User{{ID: 1, Name: "ann", StarsGathered: 10}}
	ctx := context.Background()

	first, err := fx.service.GlobalLeaderboard(ctx, 0, 0, 0, 10)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if first.Total != 1 {
		t.Fatalf("expected 1 user, got %d", first.Total)
	}

	// The next identical query must be served from the cache, not the repo.
	fx.userRepo.users = nil
	cached, err := fx.service.GlobalLeaderboard(ctx, 0, 0, 0, 10)
	if err != nil {
		t.Fatalf("cached leaderboard failed: %v", err)
	}
	if cached.Total != 1 {
		t.Fatalf("expected the cached page, got %+v", cached)
	}
}

func TestStreamLeaderboard(t *testing.T) {
	fx := newStatsFixture(nil)
	fx.userRepo.users = []model.User{
		{ID: 1, Name: "ann", StreamID: 3, StarsGathered: 10},
		{ID: 2, Name: "bob", StreamID: 3, StarsGathered: 10},
	}
	fx.attemptRepo.byStream[3] = []model.Attempt{
		{UserID: 2, Percentage: 80},
		{UserID: 1, Percentage: 60},
	}
	ctx := context.Background()

	page, err := fx.service.StreamLeaderboard(ctx, 3, 0, 10)
	if err != nil {
		t.Fatalf("stream leaderboard failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 users, got %d", page.Total)
	}
	if page.Entries[0].UserID != 2 {
		t.Fatalf("expected user 2 first on stream average, got %+v", page.Entries[0])
	}

	if _, err := fx.service.StreamLeaderboard(ctx, 99, 0, 10); !apperr.Is(err, "STREAM_NOT_FOUND") {
		t.Fatalf("expected STREAM_NOT_FOUND, got %v", err)
	}
}

func TestDashboard(t *testing.T) {
	fx := newStatsFixture(nil)
	fx.userRepo.users = []model.User{
		{ID: 1, StarsGathered: 10},
		{ID: 2, StarsGathered: 30},
		{ID: 3, StarsGathered: 10},
	}
	fx.attemptRepo.attempts = []model.Attempt{
		{QuizID: 7, UserID: 3, Percentage: 80},
		{QuizID: 8, UserID: 3, Percentage: 40},
	}

	caller := &model.User{ID: 3, StreamID: 3, StarsGathered: 10}
	stats, err := fx.service.Dashboard(caller)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	if stats.TotalAttempts != 2 || stats.AverageScore != 60 || stats.BestScore != 80 {
		t.Fatalf("own aggregates wrong: %+v", stats)
	}
	if stats.StarsGathered != 10 {
		t.Fatalf("expected 10 stars, got %d", stats.StarsGathered)
	}
	// One user above on stars, one equal-star user with a smaller id.
	if stats.GlobalRank != 3 {
		t.Fatalf("expected rank 3, got %d", stats.GlobalRank)
	}
	if len(stats.RecentAttempts) != 2 {
		t.Fatalf("expected 2 recent attempts, got %d", len(stats.RecentAttempts))
	}
}

func TestDashboardEmptyHistory(t *testing.T) {
	fx := newStatsFixture(nil)
	fx.userRepo.users = []model.User{{ID: 1, StarsGathered: 0}}

	caller := &model.User{ID: 1}
	stats, err := fx.service.Dashboard(caller)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if stats.TotalAttempts != 0 || stats.AverageScore != 0 || stats.BestScore != 0 {
		t.Fatalf("expected zeroed aggregates, got %+v", stats)
	}
	if stats.GlobalRank != 1 {
		t.Fatalf("sole user must rank 1, got %d", stats.GlobalRank)
	}
	if stats.RecentAttempts == nil || len(stats.RecentAttempts) != 0 {
		t.Fatalf("recent attempts must be an empty list, got %v", stats.RecentAttempts)
	}
}
