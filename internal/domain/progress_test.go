package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Enroll(t *testing.T) {
	u := &User{ID: "u1"}

	require.NoError(t, u.Enroll("c1"))
	assert.Equal(t, []string{"c1"}, u.EnrolledCourses)
	assert.Equal(t, CourseProgress{CompletedLessons: []string{}, Submissions: []Submission{}}, u.Progress["c1"])

	err := u.Enroll("c1")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Len(t, u.EnrolledCourses, 1, "second enroll must not duplicate the id")
}

func TestUser_EnrolledIffProgress(t *testing.T) {
	u := &User{}
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, u.Enroll(id))
	}
	assert.Len(t, u.Progress, len(u.EnrolledCourses))
	for _, id := range u.EnrolledCourses {
		_, ok := u.Progress[id]
		assert.True(t, ok, "progress missing for %s", id)
	}
}

func TestUser_MarkLessonComplete_Idempotent(t *testing.T) {
	u := &User{}
	require.NoError(t, u.Enroll("c1"))

	require.NoError(t, u.MarkLessonComplete("c1", "l1"))
	once := append([]string(nil), u.Progress["c1"].CompletedLessons...)
	require.NoError(t, u.MarkLessonComplete("c1", "l1"))

	assert.Equal(t, once, u.Progress["c1"].CompletedLessons)
	assert.Equal(t, []string{"l1"}, once)
}

func TestUser_MarkLessonComplete_NotEnrolled(t *testing.T) {
	u := &User{}
	err := u.MarkLessonComplete("c1", "l1")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Nil(t, u.Progress)
}

func TestUser_Submit_ReplacesEarlierSubmission(t *testing.T) {
	u := &User{}
	require.NoError(t, u.Enroll("c1"))

	first := Submission{LessonID: "l2", File: "v1.pdf", SubmittedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, u.Submit("c1", first))
	_, err := u.Grade("c1", "l2", 40, "Rehacer", "t1", time.Now())
	require.NoError(t, err)

	second := Submission{LessonID: "l2", File: "v2.pdf", SubmittedAt: time.Now()}
	require.NoError(t, u.Submit("c1", second))

	subs := u.Progress["c1"].Submissions
	require.Len(t, subs, 1)
	assert.Equal(t, "v2.pdf", subs[0].File)
	assert.True(t, subs[0].Pending())
}

func TestUser_Grade(t *testing.T) {
	submittedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	u := &User{}
	require.NoError(t, u.Enroll("c1"))
	require.NoError(t, u.Submit("c1", Submission{LessonID: "l2", File: "tarea.pdf", SubmittedAt: submittedAt}))

	gradedAt := submittedAt.Add(48 * time.Hour)
	sub, err := u.Grade("c1", "l2", 85, "Good", "teacher-1", gradedAt)
	require.NoError(t, err)
	require.NotNil(t, sub.Grade)
	assert.Equal(t, 85, *sub.Grade)
	assert.Equal(t, "Good", *sub.Feedback)

	stored := u.Progress["c1"].Submissions
	require.Len(t, stored, 1)
	assert.Equal(t, 85, *stored[0].Grade)
	assert.Equal(t, submittedAt, stored[0].SubmittedAt)
	assert.Equal(t, "teacher-1", stored[0].GradedBy)
	assert.Equal(t, gradedAt, *stored[0].GradedAt)
}

func TestUser_Grade_Errors(t *testing.T) {
	u := &User{}
	require.NoError(t, u.Enroll("c1"))
	require.NoError(t, u.Submit("c1", Submission{LessonID: "l1", File: "a.pdf"}))

	tests := []struct {
		name     string
		courseID string
		lessonID string
		grade    int
		kind     error
	}{
		{"below range", "c1", "l1", -1, ErrValidation},
		{"above range", "c1", "l1", 101, ErrValidation},
		{"unknown lesson", "c1", "l9", 50, ErrNotFound},
		{"unknown course", "c9", "l1", 50, ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := u.Grade(tc.courseID, tc.lessonID, tc.grade, "", "", time.Now())
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)
		})
	}
	assert.True(t, u.Progress["c1"].Submissions[0].Pending())
}

func TestUser_Grade_LegacyDuplicatesAllGraded(t *testing.T) {
	u := &User{
		EnrolledCourses: []string{"c1"},
		Progress: map[string]CourseProgress{
			"c1": {Submissions: []Submission{
				{LessonID: "l1", File: "old.pdf"},
				{LessonID: "l1", File: "new.pdf"},
			}},
		},
	}
	_, err := u.Grade("c1", "l1", 70, "ok", "t", time.Now())
	require.NoError(t, err)
	for _, s := range u.Progress["c1"].Submissions {
		require.NotNil(t, s.Grade)
		assert.Equal(t, 70, *s.Grade)
	}
}

func TestCourse_Lesson(t *testing.T) {
	c := &Course{Lessons: []Lesson{{ID: "1"}, {ID: "2"}}}
	l, err := c.Lesson("2")
	require.NoError(t, err)
	assert.Equal(t, "2", l.ID)

	_, err = c.Lesson("3")
	assert.ErrorIs(t, err, ErrNotFound)
}
