package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"eduportal-backend/internal/domain"
	"eduportal-backend/pkg/utils"
)

var testEmailCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithPassword(p string) UserOption {
	return func(u *domain.User) {
		hashed, err := utils.HashPassword(p)
		if err != nil {
			panic(err)
		}
		u.Password = hashed
	}
}

func WithViews(views ...domain.ViewID) UserOption {
	return func(u *domain.User) {
		u.Permissions = &domain.Permissions{Views: views}
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	u := &domain.User{
		Email:           fmt.Sprintf("user%d@test.com", testEmailCounter.Add(1)),
		Name:            name,
		Role:            domain.RoleStudent,
		Avatar:          "👤",
		EnrolledCourses: []string{},
		Progress:        map[string]domain.CourseProgress{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Course options
type CourseOption func(*domain.Course)

// WithLessons adds one lesson per id. Ids starting with "hw" carry an
// assignment.
func WithLessons(ids ...string) CourseOption {
	return func(c *domain.Course) {
		for _, id := range ids {
			l := domain.Lesson{ID: id, Title: "Clase " + id, Files: []domain.LessonFile{}, Messages: []domain.LessonMessage{}}
			if len(id) > 1 && id[:2] == "hw" {
				l.HasAssignment = true
				l.AssignmentDesc = "Entregar informe"
			}
			c.Lessons = append(c.Lessons, l)
		}
	}
}

func WithCategory(cat string) CourseOption {
	return func(c *domain.Course) {
		c.Category = cat
	}
}

func NewTestCourse(title string, opts ...CourseOption) *domain.Course {
	c := &domain.Course{
		Title:   title,
		Level:   domain.LevelBasic,
		Lessons: []domain.Lesson{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MustCreateUser stores u and fails the test on error.
func MustCreateUser(t *testing.T, repo domain.UserRepository, u *domain.User) *domain.User {
	t.Helper()
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return u
}

func MustCreateCourse(t *testing.T, repo domain.CourseRepository, c *domain.Course) *domain.Course {
	t.Helper()
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("creating course: %v", err)
	}
	return c
}
