package routes

import (
	"bac_exam_platform/catalog"
	"bac_exam_platform/client"
	"bac_exam_platform/handlers"
	"bac_exam_platform/middleware"
	"bac_exam_platform/platform"
	"bac_exam_platform/session"

	"github.com/gin-gonic/gin"
)

// Dependencies are the services the routes are built on.
type Dependencies struct {
	Tokens   *middleware.TokenService
	Store    session.Store
	Sessions *session.Holder
	API      *client.Client
	Catalog  *catalog.Catalog
	Registry *platform.Registry
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, deps Dependencies) {
	ws := handlers.NewWorkspace(deps.Registry, deps.Catalog, deps.Sessions)

	authHandler := handlers.NewAuthHandler(deps.Sessions, deps.Tokens)
	healthHandler := handlers.NewHealthHandler(deps.Store)
	platformHandler := handlers.NewPlatformHandler(ws)
	examHandler := handlers.NewExamHandler(ws)
	placementHandler := handlers.NewPlacementHandler(ws)
	qcmHandler := handlers.NewQCMHandler(ws)
	adminHandler := handlers.NewAdminHandler(deps.Sessions, deps.API, deps.Catalog)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)
	r.POST("/visitors", authHandler.CreateVisitor)
	r.POST("/visitors/refresh", authHandler.RefreshVisitor)

	// Visitor routes
	api := r.Group("/api")
	api.Use(middleware.VisitorMiddleware(deps.Tokens))
	{
		// Auth routes
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/admin/login", authHandler.AdminLogin)
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/session", authHandler.GetSession)

		// Navigation routes
		api.GET("/books", platformHandler.GetBooks)
		api.GET("/view", platformHandler.GetView)
		api.POST("/events", platformHandler.PostEvent)
		api.GET("/chapters/:number/video", platformHandler.GetChapterVideo)

		// Exam routes
		api.GET("/exam/slide", examHandler.GetSlide)
		api.POST("/exam/next", examHandler.NextSlide)
		api.POST("/exam/prev", examHandler.PrevSlide)
		api.PUT("/exam/answers/:questionId", examHandler.PutAnswer)
		api.POST("/exam/answers/:questionId/check", examHandler.CheckAnswer)
		api.POST("/exam/answers/:questionId/reveal", examHandler.ToggleAnswer)
		api.POST("/exam/helper/:questionId", examHandler.ToggleHelper)
		api.POST("/exam/arabic", examHandler.ToggleArabic)
		api.GET("/exam/essay", examHandler.GetEssay)
		api.GET("/exam/clip", examHandler.GetClip)

		// Word placement routes
		api.GET("/exam/placement/:questionId", placementHandler.GetBoard)
		api.POST("/exam/placement/:questionId", placementHandler.PostAction)
		api.POST("/exam/placement/:questionId/verify", placementHandler.Verify)
		api.POST("/exam/placement/:questionId/retry", placementHandler.Retry)

		// Progressive phrase routes
		api.GET("/exam/phrases/:questionId", placementHandler.GetExercise)
		api.POST("/exam/phrases/:questionId", placementHandler.PostPhraseAction)
		api.POST("/exam/phrases/:questionId/verify", placementHandler.VerifyPhrase)
		api.POST("/exam/phrases/:questionId/next", placementHandler.NextPhrase)
		api.POST("/exam/phrases/:questionId/prev", placementHandler.PrevPhrase)
		api.POST("/exam/phrases/:questionId/reset", placementHandler.ResetPhrases)

		// QCM routes
		api.GET("/qcm", qcmHandler.GetQCM)
		api.PUT("/qcm/answers/:questionId", qcmHandler.PutAnswer)
		api.POST("/qcm/submit", qcmHandler.Submit)
		api.POST("/qcm/reset", qcmHandler.Reset)

		// Admin routes
		admin := api.Group("/admin")
		{
			admin.POST("/chapters", adminHandler.CreateChapter)
			admin.PUT("/chapters/:id", adminHandler.UpdateChapter)
			admin.DELETE("/chapters/:id", adminHandler.DeleteChapter)

			admin.POST("/exams", adminHandler.CreateExam)
			admin.PUT("/exams/:id", adminHandler.UpdateExam)
			admin.DELETE("/exams/:id", adminHandler.DeleteExam)

			admin.GET("/exams/:id/questions", adminHandler.ListQuestions)
			admin.POST("/questions/import", adminHandler.ImportQuestion)
			admin.POST("/questions", adminHandler.CreateQuestion)
			admin.PUT("/questions/:id", adminHandler.UpdateQuestion)
			admin.DELETE("/questions/:id", adminHandler.DeleteQuestion)

			admin.GET("/exams/:id/essay-questions", adminHandler.ListEssayQuestions)
			admin.POST("/essay-questions/import", adminHandler.ImportEssayQuestion)
			admin.POST("/essay-questions", adminHandler.CreateEssayQuestion)
			admin.PUT("/essay-questions/:id", adminHandler.UpdateEssayQuestion)
			admin.DELETE("/essay-questions/:id", adminHandler.DeleteEssayQuestion)

			admin.POST("/qcm", adminHandler.CreateQCM)
			admin.PUT("/qcm/:id", adminHandler.UpdateQCM)
			admin.DELETE("/qcm/:id", adminHandler.DeleteQCM)

			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.PATCH("/users/:id/verify-payment", adminHandler.VerifyPayment)
		}
	}
}
