package domain

import "math"

// PassingGrade is the lowest grade that counts as a pass.
const PassingGrade = 60

// ProgressPercent is the share of the course's current lessons the student
// has completed, rounded to the nearest integer. Completed ids of lessons
// that were deleted afterwards do not count, so the result stays in [0,100].
func ProgressPercent(p CourseProgress, c *Course) int {
	total := len(c.Lessons)
	if total == 0 {
		return 0
	}
	done := CompletedCount(p, c)
	return int(math.Round(float64(done) / float64(total) * 100))
}

// CompletedCount counts completed lessons that still exist in the course.
func CompletedCount(p CourseProgress, c *Course) int {
	n := 0
	for i := range c.Lessons {
		if p.HasCompleted(c.Lessons[i].ID) {
			n++
		}
	}
	return n
}

func StatusOf(p CourseProgress, c *Course) CourseStatus {
	done := CompletedCount(p, c)
	switch {
	case done == len(c.Lessons):
		return CourseCompleted
	case done == 0:
		return CourseNotStarted
	default:
		return CourseInProgress
	}
}

// AverageGrade is the rounded mean of graded submissions. ok is false when
// nothing has been graded yet.
func AverageGrade(subs []Submission) (avg int, ok bool) {
	sum, n := 0, 0
	for _, s := range subs {
		if s.Grade == nil {
			continue
		}
		sum += *s.Grade
		n++
	}
	if n == 0 {
		return 0, false
	}
	return int(math.Round(float64(sum) / float64(n))), true
}

func Passed(grade int) bool {
	return grade >= PassingGrade
}

// PassRate is the rounded percentage of graded submissions that passed.
func PassRate(subs []Submission) (rate int, ok bool) {
	passed, n := 0, 0
	for _, s := range subs {
		if s.Grade == nil {
			continue
		}
		n++
		if Passed(*s.Grade) {
			passed++
		}
	}
	if n == 0 {
		return 0, false
	}
	return int(math.Round(float64(passed) / float64(n) * 100)), true
}

// CountPending returns pending and graded counts.
func CountPending(subs []Submission) (pending, graded int) {
	for _, s := range subs {
		if s.Pending() {
			pending++
		} else {
			graded++
		}
	}
	return pending, graded
}

func optionalInt(v int, ok bool) *int {
	if !ok {
		return nil
	}
	return &v
}

// AverageGradePtr is AverageGrade with nil standing for "no data".
func AverageGradePtr(subs []Submission) *int {
	return optionalInt(AverageGrade(subs))
}

func PassRatePtr(subs []Submission) *int {
	return optionalInt(PassRate(subs))
}
