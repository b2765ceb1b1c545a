package http

import (
	"time"

	"eduportal-backend/internal/domain"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRouter(handler *Handler, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(handler.Log), gin.Recovery())
	corsConfig := cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	// Public Routes
	api := r.Group("/api/v1")
	{
		api.POST("/register", handler.Register)
		api.POST("/login", handler.Login)
		api.POST("/logout", handler.Logout)
	}

	// Any signed-in user
	protected := api.Group("/")
	protected.Use(AuthMiddleware(handler.AuthUsecase))
	{
		protected.GET("/me", handler.GetMe)
		protected.PUT("/me", handler.UpdateProfile)
		protected.GET("/courses", handler.GetAllCourses)
		protected.GET("/courses/:id", handler.GetCourseDetail)
		protected.POST("/courses/:id/lessons/:lessonId/messages", handler.PostLessonMessage)
		protected.GET("/news", handler.GetAllNews)
		protected.GET("/news/:id", handler.GetNews)
	}

	// Student learning flow
	learning := protected.Group("/")
	learning.Use(RequireView(domain.ViewCourses, domain.ViewMyCourses, domain.ViewCourseDetail, domain.ViewProgress))
	{
		learning.GET("/me/progress", handler.GetMyProgress)
		learning.POST("/courses/:id/enroll", handler.EnrollCourse)
		learning.GET("/courses/:id/progress", handler.GetCourseProgress)
		learning.POST("/courses/:id/lessons/:lessonId/complete", handler.MarkLessonComplete)
		learning.POST("/courses/:id/lessons/:lessonId/submissions", handler.SubmitAssignment)
	}

	// Course authoring
	authoring := protected.Group("/")
	authoring.Use(RequireView(domain.ViewManageCourses, domain.ViewEditCourse))
	{
		authoring.POST("/courses", handler.CreateCourse)
		authoring.PATCH("/courses/:id", handler.UpdateCourse)
		authoring.DELETE("/courses/:id", handler.DeleteCourse)
		authoring.POST("/courses/:id/lessons", handler.AddLesson)
		authoring.PATCH("/courses/:id/lessons/:lessonId", handler.UpdateLesson)
		authoring.DELETE("/courses/:id/lessons/:lessonId", handler.DeleteLesson)
	}

	grading := protected.Group("/submissions")
	grading.Use(RequireView(domain.ViewSubmissions))
	{
		grading.GET("", handler.GetAllSubmissions)
		grading.GET("/board", handler.GetSubmissionBoard)
		grading.POST("/grade", handler.GradeSubmission)
	}

	students := protected.Group("/")
	students.Use(RequireView(domain.ViewManageStudents))
	{
		students.GET("/students", handler.GetStudents)
		students.GET("/students/:id/progress", handler.GetStudentProgress)
		students.GET("/users", handler.GetAllUsers)
		students.POST("/users", handler.CreateUser)
		students.PATCH("/users/:id/access", handler.UpdateUserAccess)
	}

	newsroom := protected.Group("/news")
	newsroom.Use(RequireView(domain.ViewManageNews))
	{
		newsroom.POST("", handler.CreateNews)
		newsroom.PATCH("/:id", handler.UpdateNews)
		newsroom.DELETE("/:id", handler.DeleteNews)
	}

	analytics := protected.Group("/analytics")
	analytics.Use(RequireView(domain.ViewAnalytics))
	{
		analytics.GET("", handler.GetAnalytics)
	}

	return r
}
