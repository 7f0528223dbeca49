package app

import (
	"quizfy_backend/docs"
	"quizfy_backend/internal/config"
	"quizfy_backend/internal/middleware"
	"quizfy_backend/internal/model"
	"quizfy_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. public
	a.registerPublicRoutes(router, c, cfg)

	// 2. authenticated
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/change-password", c.auth.ChangePassword)
		// students read their own results, teachers read results of their quizzes
		authGroup.GET("/quiz/:code/result/:submissionId", c.attempt.Result)

		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.POST("/teacher/signup", c.auth.TeacherSignup)
		public.POST("/teacher/login", c.auth.TeacherLogin)
		public.POST("/student/signup", c.auth.StudentSignup)
		public.POST("/student/login", c.auth.StudentLogin)

		public.POST("/password-reset", c.auth.RequestPasswordReset)
		public.POST("/password-reset/confirm", c.auth.ConfirmPasswordReset)

		public.GET("/quiz/:code/status", c.quiz.Status)
		public.GET("/quiz/:code/qr", c.quiz.QRCode)
		public.GET("/quiz/:code/join", middleware.TryAuthMiddleware(cfg), c.quiz.Join)
		public.GET("/quiz/:code/scan", middleware.TryAuthMiddleware(cfg), c.quiz.Scan)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	student := group.Group("")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/student/dashboard", c.dashboard.GetStudentDashboard)
		student.POST("/student/enter-quiz", c.dashboard.EnterQuiz)
		student.GET("/student/submissions/:id", c.dashboard.SubmissionDetail)

		student.GET("/quiz/:code/take", c.attempt.TakeQuiz)
		student.POST("/quiz/:code/take", c.attempt.SubmitQuiz)
	}
}

func (a *App) registerTeacherRoutes(group *gin.RouterGroup, c *controllers) {
	teacher := group.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/quizzes", c.quiz.Dashboard)
		teacher.POST("/quizzes", c.quiz.CreateQuiz)
		teacher.GET("/quizzes/live-counts", c.quiz.LiveCounts)
		teacher.GET("/quizzes/:id", c.quiz.GetQuiz)
		teacher.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		teacher.POST("/quizzes/:id/toggle", c.quiz.ToggleActive)
		teacher.PUT("/quizzes/:id/settings", c.quiz.UpdateSettings)
		teacher.POST("/quizzes/:id/move", c.quiz.MoveQuiz)

		teacher.POST("/quizzes/:id/questions", c.question.CreateQuestion)
		teacher.PUT("/quizzes/:id/questions/:questionId", c.question.UpdateQuestion)
		teacher.DELETE("/quizzes/:id/questions/:questionId", c.question.DeleteQuestion)

		teacher.GET("/quizzes/:id/submissions", c.grade.ListSubmissions)
		teacher.GET("/quizzes/:id/submissions/:submissionId/grade", c.grade.ViewSubmission)
		teacher.POST("/quizzes/:id/submissions/:submissionId/grade", c.grade.GradeSubmission)
		teacher.DELETE("/file-submissions/:id/feedback", c.grade.DeleteFileFeedback)
		teacher.DELETE("/submissions/:id/feedback", c.grade.DeleteSubmissionFeedback)

		teacher.POST("/quizzes/:id/allow-extra/:studentId", c.attempt.AllowExtraAttempt)
		teacher.POST("/quizzes/:id/attempts/:studentId/adjust", c.attempt.AdjustAttempts)

		teacher.GET("/quizzes/:id/export", c.export.ExportSubmissions)

		teacher.POST("/folders", c.folder.CreateFolder)
		teacher.GET("/folders/:id", c.folder.GetFolder)
		teacher.DELETE("/folders/:id", c.folder.DeleteFolder)
		teacher.GET("/folders/:id/analytics", c.analytics.Analytics)
		teacher.POST("/folders/:id/analytics", c.analytics.AnalyzeWithAI)
		teacher.GET("/folders/:id/export-boxes", c.export.ExportFolderBoxes)
		teacher.GET("/folders/:id/export/students/:studentId", c.export.ExportStudent)

		teacher.POST("/help-bot", c.helpBot.Ask)
	}
}
