package controller

import (
	"github.com/gin-gonic/gin"

	"quizhive-backend/internal/service"
)

// RegisterRoutes registers all route groups and their endpoints under the
// configured base path.
func RegisterRoutes(r *gin.Engine, basePath string,
	authService service.AuthService,
	institutionService service.InstitutionService,
	streamService service.StreamService,
	quizService service.QuizService,
	questionService service.QuestionService,
	attemptService service.AttemptService,
	statsService service.StatsService,
	reportService service.ReportService,
) {
	root := r.Group(basePath)

	// Auth routes.
	authCtrl := NewAuthController(authService)
	authRoutes := root.Group("/auth")
	{
		authRoutes.POST("/register", authCtrl.Register)
		authRoutes.POST("/login", authCtrl.Login)
		authRoutes.POST("/refresh", authCtrl.Refresh)
		authRoutes.GET("/user", authCtrl.Profile)
		authRoutes.PUT("/user/update", authCtrl.UpdateProfile)
	}

	// Quiz routes.
	quizCtrl := NewQuizController(quizService)
	attemptCtrl := NewAttemptController(attemptService)
	statsCtrl := NewStatsController(statsService, reportService)

	root.GET("/quizzes/:streamId", quizCtrl.ListByStream)

	quizRoutes := root.Group("/quiz")
	{
		quizRoutes.POST("", quizCtrl.Create)
		quizRoutes.GET("/:id", quizCtrl.Get)
		quizRoutes.PUT("/:id", quizCtrl.Update)
		quizRoutes.DELETE("/:id", quizCtrl.Delete)
		quizRoutes.GET("/questions/:quizId", quizCtrl.ListQuestions)

		quizRoutes.POST("/attended", attemptCtrl.Submit)
		quizRoutes.GET("/attended/:userId", attemptCtrl.ListOwn)
		quizRoutes.GET("/attempts/:quizId", attemptCtrl.ListForQuiz)
		quizRoutes.GET("/attempts/summary/:quizId", statsCtrl.QuizSummary)
		quizRoutes.GET("/attempts/summary/:quizId/report", statsCtrl.QuizSummaryReport)
	}

	// Question routes.
	questionCtrl := NewQuestionController(questionService)
	questionRoutes := root.Group("/question")
	{
		questionRoutes.POST("", questionCtrl.Create)
		questionRoutes.GET("/:id", questionCtrl.Get)
		questionRoutes.PUT("/:id", questionCtrl.Update)
		questionRoutes.DELETE("/:id", questionCtrl.Delete)
	}

	// Leaderboard and dashboard.
	root.GET("/leaderboard", statsCtrl.Leaderboard)
	root.GET("/leaderboard/stream/:id", statsCtrl.StreamLeaderboard)
	root.GET("/dashboard/stats", statsCtrl.Dashboard)

	// Reference data.
	institutionCtrl := NewInstitutionController(institutionService)
	institutionRoutes := root.Group("/institution")
	{
		institutionRoutes.POST("", institutionCtrl.Create)
		institutionRoutes.GET("", institutionCtrl.List)
		institutionRoutes.GET("/:id", institutionCtrl.Get)
		institutionRoutes.PUT("/:id", institutionCtrl.Update)
		institutionRoutes.DELETE("/:id", institutionCtrl.Delete)
	}

	streamCtrl := NewStreamController(streamService)
	streamRoutes := root.Group("/stream")
	{
		streamRoutes.POST("", streamCtrl.Create)
		streamRoutes.GET("", streamCtrl.List)
		streamRoutes.GET("/:id", streamCtrl.Get)
		streamRoutes.PUT("/:id", streamCtrl.Update)
		streamRoutes.DELETE("/:id", streamCtrl.Delete)
	}
}
