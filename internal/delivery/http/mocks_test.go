package http_test

import (
	"context"

	"eduportal-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

func result[T any](args mock.Arguments) (T, error) {
	var zero T
	if v := args.Get(0); v != nil {
		return v.(T), args.Error(1)
	}
	return zero, args.Error(1)
}

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, in))
}

func (m *MockAuthUsecase) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	return result[*domain.LoginResult](m.Called(ctx, email, password))
}

func (m *MockAuthUsecase) ParseSession(token string) (*domain.Session, error) {
	return result[*domain.Session](m.Called(token))
}

func (m *MockAuthUsecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, id))
}

func (m *MockAuthUsecase) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, id, patch))
}

type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return result[[]domain.User](m.Called(ctx))
}

func (m *MockUserUsecase) GetStudents(ctx context.Context) ([]domain.User, error) {
	return result[[]domain.User](m.Called(ctx))
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, user *domain.User, password string) error {
	return m.Called(ctx, user, password).Error(0)
}

func (m *MockUserUsecase) UpdateAccess(ctx context.Context, id string, patch domain.AccessPatch) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, id, patch))
}

type MockCourseUsecase struct {
	mock.Mock
}

func (m *MockCourseUsecase) CreateCourse(ctx context.Context, in domain.CourseInput) (*domain.Course, error) {
	return result[*domain.Course](m.Called(ctx, in))
}

func (m *MockCourseUsecase) UpdateCourse(ctx context.Context, id string, patch domain.CoursePatch) (*domain.Course, error) {
	return result[*domain.Course](m.Called(ctx, id, patch))
}

func (m *MockCourseUsecase) DeleteCourse(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCourseUsecase) GetAllCourses(ctx context.Context) ([]domain.Course, error) {
	return result[[]domain.Course](m.Called(ctx))
}

func (m *MockCourseUsecase) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	return result[*domain.Course](m.Called(ctx, id))
}

func (m *MockCourseUsecase) AddLesson(ctx context.Context, courseID string, in domain.LessonInput) (*domain.Lesson, error) {
	return result[*domain.Lesson](m.Called(ctx, courseID, in))
}

func (m *MockCourseUsecase) UpdateLesson(ctx context.Context, courseID, lessonID string, patch domain.LessonPatch) (*domain.Lesson, error) {
	return result[*domain.Lesson](m.Called(ctx, courseID, lessonID, patch))
}

func (m *MockCourseUsecase) DeleteLesson(ctx context.Context, courseID, lessonID string) (*domain.Course, error) {
	return result[*domain.Course](m.Called(ctx, courseID, lessonID))
}

func (m *MockCourseUsecase) PostLessonMessage(ctx context.Context, courseID, lessonID, author, content string) (*domain.LessonMessage, error) {
	return result[*domain.LessonMessage](m.Called(ctx, courseID, lessonID, author, content))
}

type MockProgressUsecase struct {
	mock.Mock
}

func (m *MockProgressUsecase) Enroll(ctx context.Context, userID, courseID string) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, userID, courseID))
}

func (m *MockProgressUsecase) MarkLessonComplete(ctx context.Context, userID, courseID, lessonID string) (*domain.User, error) {
	return result[*domain.User](m.Called(ctx, userID, courseID, lessonID))
}

func (m *MockProgressUsecase) SubmitAssignment(ctx context.Context, userID, courseID, lessonID string, file domain.FileMeta) (*domain.Submission, error) {
	return result[*domain.Submission](m.Called(ctx, userID, courseID, lessonID, file))
}

func (m *MockProgressUsecase) GradeSubmission(ctx context.Context, in domain.GradeInput) (*domain.Submission, error) {
	return result[*domain.Submission](m.Called(ctx, in))
}

func (m *MockProgressUsecase) GetCourseProgress(ctx context.Context, userID, courseID string) (*domain.CourseProgressReport, error) {
	return result[*domain.CourseProgressReport](m.Called(ctx, userID, courseID))
}

type MockSubmissionUsecase struct {
	mock.Mock
}

func (m *MockSubmissionUsecase) GetAllSubmissions(ctx context.Context, filter domain.SubmissionFilter) ([]domain.SubmissionView, error) {
	return result[[]domain.SubmissionView](m.Called(ctx, filter))
}

func (m *MockSubmissionUsecase) GetSubmissionBoard(ctx context.Context) (*domain.SubmissionBoard, error) {
	return result[*domain.SubmissionBoard](m.Called(ctx))
}

type MockDashboardUsecase struct {
	mock.Mock
}

func (m *MockDashboardUsecase) GetStudentProgress(ctx context.Context, userID string) (*domain.StudentProgressData, error) {
	return result[*domain.StudentProgressData](m.Called(ctx, userID))
}

func (m *MockDashboardUsecase) GetAnalytics(ctx context.Context) (*domain.AnalyticsData, error) {
	return result[*domain.AnalyticsData](m.Called(ctx))
}

type MockNewsUsecase struct {
	mock.Mock
}

func (m *MockNewsUsecase) CreateNews(ctx context.Context, in domain.NewsInput) (*domain.News, error) {
	return result[*domain.News](m.Called(ctx, in))
}

func (m *MockNewsUsecase) UpdateNews(ctx context.Context, id string, patch domain.NewsPatch) (*domain.News, error) {
	return result[*domain.News](m.Called(ctx, id, patch))
}

func (m *MockNewsUsecase) DeleteNews(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNewsUsecase) GetAllNews(ctx context.Context) ([]domain.News, error) {
	return result[[]domain.News](m.Called(ctx))
}

func (m *MockNewsUsecase) GetNews(ctx context.Context, id string) (*domain.News, error) {
	return result[*domain.News](m.Called(ctx, id))
}
