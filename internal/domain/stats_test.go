package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func grade(v int) *int { return &v }

func TestProgressPercent(t *testing.T) {
	twoLessons := &Course{Lessons: []Lesson{{ID: "1"}, {ID: "2"}}}
	threeLessons := &Course{Lessons: []Lesson{{ID: "1"}, {ID: "2"}, {ID: "3"}}}

	tests := []struct {
		name      string
		completed []string
		course    *Course
		want      int
	}{
		{"no lessons", []string{"1"}, &Course{}, 0},
		{"none completed", nil, twoLessons, 0},
		{"half", []string{"1"}, twoLessons, 50},
		{"all", []string{"1", "2"}, twoLessons, 100},
		{"rounded", []string{"1"}, threeLessons, 33},
		{"rounded up", []string{"1", "2"}, threeLessons, 67},
		{"orphaned ids ignored", []string{"1", "2", "deleted"}, twoLessons, 100},
		{"only orphaned", []string{"deleted"}, twoLessons, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ProgressPercent(CourseProgress{CompletedLessons: tc.completed}, tc.course)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStatusOf(t *testing.T) {
	c := &Course{Lessons: []Lesson{{ID: "1"}, {ID: "2"}}}
	assert.Equal(t, CourseNotStarted, StatusOf(CourseProgress{}, c))
	assert.Equal(t, CourseInProgress, StatusOf(CourseProgress{CompletedLessons: []string{"1"}}, c))
	assert.Equal(t, CourseCompleted, StatusOf(CourseProgress{CompletedLessons: []string{"2", "1"}}, c))
}

func TestAverageGrade(t *testing.T) {
	_, ok := AverageGrade(nil)
	assert.False(t, ok, "empty set has no data")

	_, ok = AverageGrade([]Submission{{LessonID: "1"}, {LessonID: "2"}})
	assert.False(t, ok, "all pending has no data")

	avg, ok := AverageGrade([]Submission{{Grade: grade(72)}})
	assert.True(t, ok)
	assert.Equal(t, 72, avg)

	avg, ok = AverageGrade([]Submission{{Grade: grade(70)}, {Grade: grade(75)}, {}})
	assert.True(t, ok)
	assert.Equal(t, 73, avg)

	assert.Nil(t, AverageGradePtr(nil))
	assert.Equal(t, 0, *AverageGradePtr([]Submission{{Grade: grade(0)}}))
}

func TestPassRate(t *testing.T) {
	_, ok := PassRate([]Submission{{}})
	assert.False(t, ok)

	rate, ok := PassRate([]Submission{{Grade: grade(60)}, {Grade: grade(59)}, {Grade: grade(100)}})
	assert.True(t, ok)
	assert.Equal(t, 67, rate)

	assert.True(t, Passed(60))
	assert.False(t, Passed(59))
}

func TestCountPending(t *testing.T) {
	pending, graded := CountPending([]Submission{{}, {Grade: grade(10)}, {}})
	assert.Equal(t, 2, pending)
	assert.Equal(t, 1, graded)
}
