package usecase

import (
	"context"
	"errors"
	"testing"

	"eduportal-backend/internal/domain"
	"eduportal-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProgress(t *testing.T) (domain.ProgressUsecase, domain.Repositories) {
	t.Helper()
	store := testutil.NewTestStore(t)
	repos := store.Repositories()
	return NewProgressUsecase(repos, store), repos
}

func TestEnroll(t *testing.T) {
	uc, repos := setupProgress(t)
	ctx := context.Background()
	student := testutil.MustCreateUser(t, repos.Users, testutil.NewTestUser("Ana"))
	course := testutil.MustCreateCourse(t, repos.Courses, testutil.NewTestCourse("Go", testutil.WithLessons("1", "2")))

	user, err := uc.Enroll(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{course.ID}, user.EnrolledCourses)
	assert.Equal(t, domain.CourseProgress{CompletedLessons: []string{}, Submissions: []domain.Submission{}}, user.Progress[course.ID])

	stored, err := repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.EnrolledStudents)

	_, err = uc.Enroll(ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, err = repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.EnrolledStudents, "double enroll must not bump the counter")
}

func TestEnroll_MissingEntities(t *testing.T) {
	uc, repos := setupProgress(t)
	ctx := context.Background()
	student := testutil.MustCreateUser(t, repos.Users, testutil.NewTestUser("Ana"))

	_, err := uc.Enroll(ctx, student.ID, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Enroll(ctx, "nobody", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnroll_RollsBackUserWhenCounterFails(t *testing.T) {
	store := testutil.NewTestStore(t)
	repos := store.Repositories()
	ctx := context.Background()
	boom := errors.New("course write failed")
	uc := NewProgressUsecase(repos, &testutil.FailingCourseUpdateUoW{Store: store, Err: boom})

	student := testutil.MustCreateUser(t, repos.Users, testutil.NewTestUser("Ana"))
	course := testutil.MustCreateCourse(t, repos.Courses, testutil.NewTestCourse("Go"))

	_, err := uc.Enroll(ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, boom)

	user, err := repos.Users.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, user.EnrolledCourses, "user write should be rolled back")
	assert.Empty(t, user.Progress)
}

func TestMarkLessonComplete(t *testing.T) {
	uc, repos := setupProgress(t)
	ctx := context.Background()
	student := testutil.MustCreateUser(t, repos.Users, testutil.NewTestUser("Ana"))
	course := testutil.MustCreateCourse(t, repos.Courses, testutil.NewTestCourse("Go", testutil.WithLessons("1", "2")))

	_, err := uc.MarkLessonComplete(ctx, student.ID, course.ID, "1")
	assert.ErrorIs(t, err, domain.ErrValidation, "not enrolled")

	_, err = uc.Enroll(ctx, student.ID, course.ID)
	require.NoError(t, err)

	_, err = uc.MarkLessonComplete(ctx, student.ID, course.ID, "9")
	assert.ErrorIs(t, err, domain.ErrNotFound, "lesson outside the course")

	_, err = uc.MarkLessonComplete(ctx, student.ID, course.ID, "1")
	require.NoError(t, err)
	user, err := uc.MarkLessonComplete(ctx, student.ID, course.ID, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, user.Progress[course.ID].CompletedLessons)

	report, err := uc.GetCourseProgress(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, report.Percent)
	assert.Equal(t, domain.CourseInProgress, report.Status)
	assert.Nil(t, report.AverageGrade)
}

func TestSubmitAndGrade(t *testing.T) {
	uc, repos := setupProgress(t)
	ctx := context.Background()
	student := testutil.MustCreateUser(t, repos.Users, testutil.NewTestUser("Ana"))
	course := testutil.MustCreateCourse(t, repos.Courses, testutil.NewTestCourse("Go", testutil.WithLessons("1", "hw2")))
	_, err := uc.Enroll(ctx, student.ID, course.ID)
	require.NoError(t, err)

	_, err = uc.SubmitAssignment(ctx, student.ID, course.ID, "1", domain.FileMeta{FileName: "a.pdf"})
	assert.ErrorIs(t, err, domain.ErrValidation, "lesson without assignment")

	_, err = uc.SubmitAssignment(ctx, student.ID, course.ID, "hw2", domain.FileMeta{})
	assert.ErrorIs(t, err, domain.ErrValidation, "empty file name")

	sub, err := uc.SubmitAssignment(ctx, student.ID, course.ID, "hw2", domain.FileMeta{FileName: "informe.pdf", FileURL: "https://files/informe.pdf"})
	require.NoError(t, err)
	assert.True(t, sub.Pending())
	require.NotNil(t, sub.FileURL)

	_, err = uc.GradeSubmission(ctx, domain.GradeInput{StudentID: student.ID, CourseID: course.ID, LessonID: "hw2", Grade: 101})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.GradeSubmission(ctx, domain.GradeInput{StudentID: student.ID, CourseID: course.ID, LessonID: "1", Grade: 50})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	graded, err := uc.GradeSubmission(ctx, domain.GradeInput{
		StudentID: student.ID, CourseID: course.ID, LessonID: "hw2",
		Grade: 85, Feedback: "Muy bien", GradedBy: "teacher-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 85, *graded.Grade)
	assert.Equal(t, "Muy bien", *graded.Feedback)
	assert.Equal(t, sub.SubmittedAt.Unix(), graded.SubmittedAt.Unix())

	report, err := uc.GetCourseProgress(ctx, student.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, report.AverageGrade)
	assert.Equal(t, 85, *report.AverageGrade)
	assert.Equal(t, 1, report.GradedCount)
	assert.Equal(t, 0, report.PendingCount)
}

func TestSubmitAssignment_ResubmissionResetsGrade(t *testing.T) {
	uc, repos := setupProgress(t)
	ctx := context.Background()
	student := testutil.MustCreateUser(t, repos.Users, testutil.NewTestUser("Ana"))
	course := testutil.MustCreateCourse(t, repos.Courses, testutil.NewTestCourse("Go", testutil.WithLessons("hw1")))
	_, err := uc.Enroll(ctx, student.ID, course.ID)
	require.NoError(t, err)

	_, err = uc.SubmitAssignment(ctx, student.ID, course.ID, "hw1", domain.FileMeta{FileName: "v1.pdf"})
	require.NoError(t, err)
	_, err = uc.GradeSubmission(ctx, domain.GradeInput{StudentID: student.ID, CourseID: course.ID, LessonID: "hw1", Grade: 40})
	require.NoError(t, err)
	_, err = uc.SubmitAssignment(ctx, student.ID, course.ID, "hw1", domain.FileMeta{FileName: "v2.pdf"})
	require.NoError(t, err)

	user, err := repos.Users.GetByID(ctx, student.ID)
	require.NoError(t, err)
	subs := user.Progress[course.ID].Submissions
	require.Len(t, subs, 1)
	assert.Equal(t, "v2.pdf", subs[0].File)
	assert.True(t, subs[0].Pending())
}

func TestGetCourseProgress_DeletedLessonDoesNotOverflow(t *testing.T) {
	uc, repos := setupProgress(t)
	ctx := context.Background()
	courses := NewCourseUsecase(repos.Courses)
	student := testutil.MustCreateUser(t, repos.Users, testutil.NewTestUser("Ana"))
	course := testutil.MustCreateCourse(t, repos.Courses, testutil.NewTestCourse("Go", testutil.WithLessons("1", "2", "3")))
	_, err := uc.Enroll(ctx, student.ID, course.ID)
	require.NoError(t, err)
	for _, id := range []string{"1", "2", "3"} {
		_, err = uc.MarkLessonComplete(ctx, student.ID, course.ID, id)
		require.NoError(t, err)
	}

	_, err = courses.DeleteLesson(ctx, course.ID, "3")
	require.NoError(t, err)

	report, err := uc.GetCourseProgress(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, report.Percent)
	assert.Equal(t, 2, report.CompletedLessons)
	assert.Equal(t, domain.CourseCompleted, report.Status)
}
