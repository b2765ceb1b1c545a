package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDirector Role = "director"
	RoleTeacher  Role = "teacher"
	RoleStudent  Role = "student"
)

// IsStaff reports whether the role belongs to admin, director or teacher.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleDirector || r == RoleTeacher
}

func (r Role) Valid() bool {
	return r.IsStaff() || r == RoleStudent
}

type Level string

const (
	LevelBasic        Level = "Básico"
	LevelIntermediate Level = "Intermedio"
	LevelAdvanced     Level = "Avanzado"
)

func (l Level) Valid() bool {
	return l == LevelBasic || l == LevelIntermediate || l == LevelAdvanced
}

// Permissions overrides the role's default view list when Views is not empty.
type Permissions struct {
	Views []ViewID `json:"views,omitempty" bson:"views,omitempty"`
}

type User struct {
	ID              string                    `json:"id" bson:"_id"`
	Email           string                    `json:"email" bson:"email"`
	Password        string                    `json:"-" bson:"password"`
	Name            string                    `json:"name" bson:"name"`
	Role            Role                      `json:"role" bson:"role"`
	Avatar          string                    `json:"avatar" bson:"avatar"`
	Permissions     *Permissions              `json:"permissions,omitempty" bson:"permissions,omitempty"`
	EnrolledCourses []string                  `json:"enrolled_courses" bson:"enrolled_courses"`
	Progress        map[string]CourseProgress `json:"progress" bson:"progress"`
	Version         int64                     `json:"version" bson:"version"`
	CreatedAt       time.Time                 `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at" bson:"updated_at"`
}

// CourseProgress is the per-user, per-course progress record.
type CourseProgress struct {
	CompletedLessons []string     `json:"completed_lessons" bson:"completed_lessons"`
	Submissions      []Submission `json:"submissions" bson:"submissions"`
}

// Submission is a student's deliverable for one lesson. Grade is nil while pending.
type Submission struct {
	LessonID    string     `json:"lesson_id" bson:"lesson_id"`
	File        string     `json:"file" bson:"file"`
	FileURL     *string    `json:"file_url,omitempty" bson:"file_url,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at" bson:"submitted_at"`
	Grade       *int       `json:"grade" bson:"grade"`
	Feedback    *string    `json:"feedback" bson:"feedback"`
	GradedAt    *time.Time `json:"graded_at,omitempty" bson:"graded_at,omitempty"`
	GradedBy    string     `json:"graded_by,omitempty" bson:"graded_by,omitempty"`
}

func (s Submission) Pending() bool {
	return s.Grade == nil
}

type Course struct {
	ID               string    `json:"id" bson:"_id"`
	Title            string    `json:"title" bson:"title"`
	Description      string    `json:"description" bson:"description"`
	Instructor       string    `json:"instructor" bson:"instructor"`
	Category         string    `json:"category" bson:"category"`
	Level            Level     `json:"level" bson:"level"`
	Thumbnail        string    `json:"thumbnail" bson:"thumbnail"` // emoji
	Duration         string    `json:"duration" bson:"duration"`
	EnrolledStudents int       `json:"enrolled_students" bson:"enrolled_students"`
	Rating           float64   `json:"rating" bson:"rating"`
	Lessons          []Lesson  `json:"lessons" bson:"lessons"`
	Version          int64     `json:"version" bson:"version"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// Lesson lives embedded in its Course document.
type Lesson struct {
	ID             string          `json:"id" bson:"id"`
	Title          string          `json:"title" bson:"title"`
	Description    string          `json:"description" bson:"description"`
	VideoURL       string          `json:"video_url" bson:"video_url"`
	Duration       string          `json:"duration" bson:"duration"`
	Files          []LessonFile    `json:"files" bson:"files"`
	HasAssignment  bool            `json:"has_assignment" bson:"has_assignment"`
	AssignmentDesc string          `json:"assignment_desc,omitempty" bson:"assignment_desc,omitempty"`
	Messages       []LessonMessage `json:"messages" bson:"messages"`
	CreatedAt      time.Time       `json:"created_at" bson:"created_at"`
}

type LessonFile struct {
	Name string `json:"name" bson:"name"`
	Size string `json:"size" bson:"size"`
}

type LessonMessage struct {
	ID        string    `json:"id" bson:"id"`
	Author    string    `json:"author" bson:"author"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type News struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Author    string    `json:"author" bson:"author"`
	Date      string    `json:"date" bson:"date"` // YYYY-MM-DD
	Important bool      `json:"important" bson:"important"`
	Version   int64     `json:"version" bson:"version"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ========== SESSION ==========

// Session is the authenticated caller of a request.
type Session struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// ========== INPUTS ==========

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type ProfilePatch struct {
	Name     *string `json:"name"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}

type AccessPatch struct {
	Role  *Role     `json:"role"`
	Views *[]ViewID `json:"views"`
}

type CourseInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Instructor  string  `json:"instructor"`
	Category    string  `json:"category"`
	Level       Level   `json:"level"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    string  `json:"duration"`
	Rating      float64 `json:"rating"`
}

type CoursePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Instructor  *string  `json:"instructor"`
	Category    *string  `json:"category"`
	Level       *Level   `json:"level"`
	Thumbnail   *string  `json:"thumbnail"`
	Duration    *string  `json:"duration"`
	Rating      *float64 `json:"rating"`
}

type LessonInput struct {
	Title          string       `json:"title" binding:"required"`
	Description    string       `json:"description"`
	VideoURL       string       `json:"video_url"`
	Duration       string       `json:"duration"`
	Files          []LessonFile `json:"files"`
	HasAssignment  bool         `json:"has_assignment"`
	AssignmentDesc string       `json:"assignment_desc"`
}

type LessonPatch struct {
	Title          *string       `json:"title"`
	Description    *string       `json:"description"`
	VideoURL       *string       `json:"video_url"`
	Duration       *string       `json:"duration"`
	Files          *[]LessonFile `json:"files"`
	HasAssignment  *bool         `json:"has_assignment"`
	AssignmentDesc *string       `json:"assignment_desc"`
}

// FileMeta describes the file a student hands in. Only the name is required.
type FileMeta struct {
	FileName string `json:"file_name" binding:"required"`
	FileURL  string `json:"file_url"`
}

type GradeInput struct {
	StudentID string `json:"student_id" binding:"required"`
	CourseID  string `json:"course_id" binding:"required"`
	LessonID  string `json:"lesson_id" binding:"required"`
	Grade     int    `json:"grade"`
	Feedback  string `json:"feedback"`
	GradedBy  string `json:"-"`
}

type NewsInput struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	Important bool   `json:"important"`
}

type NewsPatch struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Author    *string `json:"author"`
	Date      *string `json:"date"`
	Important *bool   `json:"important"`
}

// ========== RESPONSE DTOs ==========

type SubmissionStatus string

const (
	SubmissionsAll     SubmissionStatus = "all"
	SubmissionsPending SubmissionStatus = "pending"
	SubmissionsGraded  SubmissionStatus = "graded"
)

type SubmissionFilter struct {
	Status   SubmissionStatus
	CourseID string
}

// SubmissionView is one submission joined with its student, course and lesson.
type SubmissionView struct {
	Submission
	StudentID     string `json:"student_id"`
	StudentName   string `json:"student_name"`
	StudentAvatar string `json:"student_avatar"`
	CourseID      string `json:"course_id"`
	CourseTitle   string `json:"course_title"`
	LessonTitle   string `json:"lesson_title"`
}

type SubmissionBoard struct {
	Pending []SubmissionView `json:"pending"`
	Graded  []SubmissionView `json:"graded"`
}

type CourseStatus string

const (
	CourseNotStarted CourseStatus = "not_started"
	CourseInProgress CourseStatus = "in_progress"
	CourseCompleted  CourseStatus = "completed"
)

// CourseProgressReport - progress of one student in one course
type CourseProgressReport struct {
	CourseID         string       `json:"course_id"`
	CourseTitle      string       `json:"course_title"`
	Thumbnail        string       `json:"thumbnail"`
	CompletedLessons int          `json:"completed_lessons"`
	TotalLessons     int          `json:"total_lessons"`
	Percent          int          `json:"percent"`
	Status           CourseStatus `json:"status"`
	AverageGrade     *int         `json:"average_grade"`
	GradedCount      int          `json:"graded_count"`
	PendingCount     int          `json:"pending_count"`
	Submissions      []Submission `json:"submissions"`
}

// StudentProgressData - data for the student progress view
type StudentProgressData struct {
	User                  *User                  `json:"user"`
	EnrolledCourses       int                    `json:"enrolled_courses"`
	CompletedCourses      int                    `json:"completed_courses"`
	InProgressCourses     int                    `json:"in_progress_courses"`
	NotStartedCourses     int                    `json:"not_started_courses"`
	TotalLessons          int                    `json:"total_lessons"`
	TotalCompletedLessons int                    `json:"total_completed_lessons"`
	OverallPercent        int                    `json:"overall_percent"`
	AverageGrade          *int                   `json:"average_grade"`
	GradedSubmissions     int                    `json:"graded_submissions"`
	PendingSubmissions    int                    `json:"pending_submissions"`
	Courses               []CourseProgressReport `json:"courses"`
	ImportantNews         []News                 `json:"important_news"`
}

// AnalyticsData - data for the staff analytics view
type AnalyticsData struct {
	TotalCourses       int            `json:"total_courses"`
	TotalStudents      int            `json:"total_students"`
	TotalEnrollments   int            `json:"total_enrollments"`
	TotalLessons       int            `json:"total_lessons"`
	TotalSubmissions   int            `json:"total_submissions"`
	PendingSubmissions int            `json:"pending_submissions"`
	GradedSubmissions  int            `json:"graded_submissions"`
	AverageGrade       *int           `json:"average_grade"`
	PassRate           *int           `json:"pass_rate"`
	CoursesByCategory  map[string]int `json:"courses_by_category"`
}
