package usecase

import (
	"context"
	"testing"

	"eduportal-backend/internal/domain"
	"eduportal-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStudentProgress(t *testing.T) {
	store := testutil.NewTestStore(t)
	repos := store.Repositories()
	ctx := context.Background()

	done := testutil.MustCreateCourse(t, repos.Courses, testutil.NewTestCourse("Completo", testutil.WithLessons("1", "2")))
	half := testutil.MustCreateCourse(t, repos.Courses, testutil.NewTestCourse("Mitad", testutil.WithLessons("1", "hw2")))
	fresh := testutil.MustCreateCourse(t, repos.Courses, testutil.NewTestCourse("Nuevo", testutil.WithLessons("1")))
	testutil.MustCreateCourse(t, repos.Courses, testutil.NewTestCourse("Ajeno", testutil.WithLessons("1")))

	u := testutil.NewTestUser("Ana")
	u.EnrolledCourses = []string{done.ID, half.ID, fresh.ID}
	u.Progress = map[string]domain.CourseProgress{
		done.ID: {CompletedLessons: []string{"1", "2"}},
		half.ID: {CompletedLessons: []string{"1"}, Submissions: []domain.Submission{
			{LessonID: "hw2", File: "a.pdf", Grade: gradeOf(70)},
		}},
		fresh.ID: {},
	}
	testutil.MustCreateUser(t, repos.Users, u)

	require.NoError(t, repos.News.Create(ctx, &domain.News{Title: "Aviso", Content: "x", Important: true}))
	require.NoError(t, repos.News.Create(ctx, &domain.News{Title: "Nota", Content: "y"}))

	uc := NewDashboardUsecase(repos.Users, repos.Courses, repos.News)
	data, err := uc.GetStudentProgress(ctx, u.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, data.EnrolledCourses)
	assert.Equal(t, 1, data.CompletedCourses)
	assert.Equal(t, 1, data.InProgressCourses)
	assert.Equal(t, 1, data.NotStartedCourses)
	assert.Equal(t, 5, data.TotalLessons)
	assert.Equal(t, 3, data.TotalCompletedLessons)
	assert.Equal(t, 60, data.OverallPercent)
	require.NotNil(t, data.AverageGrade)
	assert.Equal(t, 70, *data.AverageGrade)
	assert.Equal(t, 1, data.GradedSubmissions)
	assert.Len(t, data.Courses, 3)
	require.Len(t, data.ImportantNews, 1)
	assert.Equal(t, "Aviso", data.ImportantNews[0].Title)

	_, err = uc.GetStudentProgress(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetAnalytics(t *testing.T) {
	store := testutil.NewTestStore(t)
	repos := store.Repositories()
	ctx := context.Background()
	uc := NewDashboardUsecase(repos.Users, repos.Courses, repos.News)

	empty, err := uc.GetAnalytics(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty.AverageGrade, "no graded submissions means no data")
	assert.Nil(t, empty.PassRate)

	seedSubmissions(t, repos)
	c := testutil.NewTestCourse("Residuos", testutil.WithCategory("Medio Ambiente"), testutil.WithLessons("1"))
	c.EnrolledStudents = 5
	testutil.MustCreateCourse(t, repos.Courses, c)

	data, err := uc.GetAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, data.TotalCourses)
	assert.Equal(t, 2, data.TotalStudents)
	assert.Equal(t, 5, data.TotalEnrollments)
	assert.Equal(t, 3, data.TotalLessons)
	assert.Equal(t, 4, data.TotalSubmissions)
	assert.Equal(t, 2, data.PendingSubmissions)
	assert.Equal(t, 2, data.GradedSubmissions)
	require.NotNil(t, data.AverageGrade)
	assert.Equal(t, 65, *data.AverageGrade)
	require.NotNil(t, data.PassRate)
	assert.Equal(t, 50, *data.PassRate)
	assert.Equal(t, 1, data.CoursesByCategory["Medio Ambiente"])
}
