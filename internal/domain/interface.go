package domain

import "context"

// Update methods compare the entity's Version with the stored one and fail
// with ErrStaleDocument when they differ. On success the entity's Version
// and UpdatedAt are advanced in place.

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	GetByRole(ctx context.Context, role Role) ([]User, error)
	Update(ctx context.Context, user *User) error
}

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id string) (*Course, error)
	// GetAll returns the most recently created course first.
	GetAll(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type NewsRepository interface {
	Create(ctx context.Context, news *News) error
	GetByID(ctx context.Context, id string) (*News, error)
	GetAll(ctx context.Context) ([]News, error)
	Update(ctx context.Context, news *News) error
	Delete(ctx context.Context, id string) error
}

// Repositories groups the collections of one store, either bound to the
// store itself or to a running transaction.
type Repositories struct {
	Users   UserRepository
	Courses CourseRepository
	News    NewsRepository
}

// UnitOfWork runs fn inside a transaction. The repositories handed to fn are
// bound to that transaction; an error from fn rolls every write back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ParseSession(token string) (*Session, error)
	GetUser(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error)
}

type UserUsecase interface {
	GetAllUsers(ctx context.Context) ([]User, error)
	GetStudents(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, user *User, password string) error
	UpdateAccess(ctx context.Context, id string, patch AccessPatch) (*User, error)
}

type CourseUsecase interface {
	CreateCourse(ctx context.Context, in CourseInput) (*Course, error)
	UpdateCourse(ctx context.Context, id string, patch CoursePatch) (*Course, error)
	DeleteCourse(ctx context.Context, id string) error
	GetAllCourses(ctx context.Context) ([]Course, error)
	GetCourse(ctx context.Context, id string) (*Course, error)
	AddLesson(ctx context.Context, courseID string, in LessonInput) (*Lesson, error)
	UpdateLesson(ctx context.Context, courseID, lessonID string, patch LessonPatch) (*Lesson, error)
	DeleteLesson(ctx context.Context, courseID, lessonID string) (*Course, error)
	PostLessonMessage(ctx context.Context, courseID, lessonID, author, content string) (*LessonMessage, error)
}

type ProgressUsecase interface {
	Enroll(ctx context.Context, userID, courseID string) (*User, error)
	MarkLessonComplete(ctx context.Context, userID, courseID, lessonID string) (*User, error)
	SubmitAssignment(ctx context.Context, userID, courseID, lessonID string, file FileMeta) (*Submission, error)
	GradeSubmission(ctx context.Context, in GradeInput) (*Submission, error)
	GetCourseProgress(ctx context.Context, userID, courseID string) (*CourseProgressReport, error)
}

type SubmissionUsecase interface {
	GetAllSubmissions(ctx context.Context, filter SubmissionFilter) ([]SubmissionView, error)
	GetSubmissionBoard(ctx context.Context) (*SubmissionBoard, error)
}

type DashboardUsecase interface {
	GetStudentProgress(ctx context.Context, userID string) (*StudentProgressData, error)
	GetAnalytics(ctx context.Context) (*AnalyticsData, error)
}

type NewsUsecase interface {
	CreateNews(ctx context.Context, in NewsInput) (*News, error)
	UpdateNews(ctx context.Context, id string, patch NewsPatch) (*News, error)
	DeleteNews(ctx context.Context, id string) error
	GetAllNews(ctx context.Context) ([]News, error)
	GetNews(ctx context.Context, id string) (*News, error)
}

type SeedUsecase interface {
	SeedInitialData(ctx context.Context) error
}
