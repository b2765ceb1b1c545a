package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"eduportal-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	AuthUsecase       domain.AuthUsecase
	UserUsecase       domain.UserUsecase
	CourseUsecase     domain.CourseUsecase
	ProgressUsecase   domain.ProgressUsecase
	SubmissionUsecase domain.SubmissionUsecase
	DashboardUsecase  domain.DashboardUsecase
	NewsUsecase       domain.NewsUsecase
	Log               *zap.Logger
}

func NewHandler(
	au domain.AuthUsecase,
	uu domain.UserUsecase,
	cu domain.CourseUsecase,
	pu domain.ProgressUsecase,
	su domain.SubmissionUsecase,
	du domain.DashboardUsecase,
	nu domain.NewsUsecase,
	log *zap.Logger,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		AuthUsecase:       au,
		UserUsecase:       uu,
		CourseUsecase:     cu,
		ProgressUsecase:   pu,
		SubmissionUsecase: su,
		DashboardUsecase:  du,
		NewsUsecase:       nu,
		Log:               log,
	}
}

// ========== UTILITY FUNCTIONS ==========

func formatValidationErrors(err error) gin.H {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		errors := make(map[string]string)
		for _, f := range ve {
			errors[f.Field()] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", f.Field(), f.Tag())
		}
		return gin.H{"error": "Validation failed", "details": errors}
	}
	return gin.H{"error": "Invalid request: " + err.Error()}
}

// respondError maps a domain error kind to its HTTP status.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno, intentá de nuevo"})
	}
}

func getUserID(c *gin.Context) (string, error) {
	s, ok := domain.SessionFrom(c.Request.Context())
	if !ok {
		return "", errors.New("user ID not found in token")
	}
	return s.UserID, nil
}

// ========== AUTH HANDLERS ==========

func (h *Handler) Register(c *gin.Context) {
	var in domain.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user, err := h.AuthUsecase.Register(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Cuenta creada",
		"user":    user,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var creds struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	res, err := h.AuthUsecase.Login(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.respondError(c, err)
		return
	}

	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	c.SetCookie(tokenCookie, res.Token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user":       res.User,
		"views":      domain.AllowedViews(res.User),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(tokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Iniciá sesión para continuar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"views": domain.AllowedViews(user),
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user, err := h.AuthUsecase.UpdateProfile(c.Request.Context(), userID, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ========== DASHBOARD HANDLERS ==========

func (h *Handler) GetMyProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	data, err := h.DashboardUsecase.GetStudentProgress(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) GetStudentProgress(c *gin.Context) {
	data, err := h.DashboardUsecase.GetStudentProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	data, err := h.DashboardUsecase.GetAnalytics(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// ========== COURSE HANDLERS ==========

func (h *Handler) GetAllCourses(c *gin.Context) {
	courses, err := h.CourseUsecase.GetAllCourses(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) GetCourseDetail(c *gin.Context) {
	course, err := h.CourseUsecase.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var in domain.CourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	course, err := h.CourseUsecase.CreateCourse(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	var patch domain.CoursePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	course, err := h.CourseUsecase.UpdateCourse(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	if err := h.CourseUsecase.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Curso eliminado"})
}

// ========== LESSON HANDLERS ==========

func (h *Handler) AddLesson(c *gin.Context) {
	var in domain.LessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	lesson, err := h.CourseUsecase.AddLesson(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

func (h *Handler) UpdateLesson(c *gin.Context) {
	var patch domain.LessonPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	lesson, err := h.CourseUsecase.UpdateLesson(c.Request.Context(), c.Param("id"), c.Param("lessonId"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (h *Handler) DeleteLesson(c *gin.Context) {
	course, err := h.CourseUsecase.DeleteLesson(c.Request.Context(), c.Param("id"), c.Param("lessonId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) PostLessonMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Iniciá sesión para continuar"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	msg, err := h.CourseUsecase.PostLessonMessage(c.Request.Context(), c.Param("id"), c.Param("lessonId"), user.Name, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ========== PROGRESS HANDLERS ==========

func (h *Handler) EnrollCourse(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := h.ProgressUsecase.Enroll(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) MarkLessonComplete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := h.ProgressUsecase.MarkLessonComplete(c.Request.Context(), userID, c.Param("id"), c.Param("lessonId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) SubmitAssignment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var file domain.FileMeta
	if err := c.ShouldBindJSON(&file); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	sub, err := h.ProgressUsecase.SubmitAssignment(c.Request.Context(), userID, c.Param("id"), c.Param("lessonId"), file)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) GetCourseProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	report, err := h.ProgressUsecase.GetCourseProgress(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ========== SUBMISSION HANDLERS ==========

func (h *Handler) GetAllSubmissions(c *gin.Context) {
	filter := domain.SubmissionFilter{
		Status:   domain.SubmissionStatus(c.DefaultQuery("status", string(domain.SubmissionsAll))),
		CourseID: c.Query("course_id"),
	}
	switch filter.Status {
	case domain.SubmissionsAll, domain.SubmissionsPending, domain.SubmissionsGraded:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	subs, err := h.SubmissionUsecase.GetAllSubmissions(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *Handler) GetSubmissionBoard(c *gin.Context) {
	board, err := h.SubmissionUsecase.GetSubmissionBoard(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *Handler) GradeSubmission(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		StudentID string `json:"student_id" binding:"required"`
		CourseID  string `json:"course_id" binding:"required"`
		LessonID  string `json:"lesson_id" binding:"required"`
		Grade     *int   `json:"grade" binding:"required"`
		Feedback  string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	sub, err := h.ProgressUsecase.GradeSubmission(c.Request.Context(), domain.GradeInput{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		LessonID:  req.LessonID,
		Grade:     *req.Grade,
		Feedback:  req.Feedback,
		GradedBy:  userID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ========== USER HANDLERS ==========

func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.UserUsecase.GetAllUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetStudents(c *gin.Context) {
	users, err := h.UserUsecase.GetStudents(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req struct {
		Name     string      `json:"name" binding:"required"`
		Email    string      `json:"email" binding:"required,email"`
		Password string      `json:"password" binding:"required,min=6"`
		Role     domain.Role `json:"role" binding:"required"`
		Avatar   string      `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user := &domain.User{Name: req.Name, Email: req.Email, Role: req.Role, Avatar: req.Avatar}
	if err := h.UserUsecase.CreateUser(c.Request.Context(), user, req.Password); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateUserAccess(c *gin.Context) {
	var patch domain.AccessPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user, err := h.UserUsecase.UpdateAccess(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ========== NEWS HANDLERS ==========

func (h *Handler) GetAllNews(c *gin.Context) {
	news, err := h.NewsUsecase.GetAllNews(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

func (h *Handler) GetNews(c *gin.Context) {
	news, err := h.NewsUsecase.GetNews(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

func (h *Handler) CreateNews(c *gin.Context) {
	var in domain.NewsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}
	if in.Author == "" {
		if user, ok := currentUser(c); ok {
			in.Author = user.Name
		}
	}

	news, err := h.NewsUsecase.CreateNews(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, news)
}

func (h *Handler) UpdateNews(c *gin.Context) {
	var patch domain.NewsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	news, err := h.NewsUsecase.UpdateNews(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

func (h *Handler) DeleteNews(c *gin.Context) {
	if err := h.NewsUsecase.DeleteNews(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Noticia eliminada"})
}
