package domain

import "time"

func (u *User) IsEnrolled(courseID string) bool {
	for _, id := range u.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// Enroll registers the course in the user's list and opens an empty progress
// record for it.
func (u *User) Enroll(courseID string) error {
	if u.IsEnrolled(courseID) {
		return ErrAlreadyEnrolled
	}
	u.EnrolledCourses = append(u.EnrolledCourses, courseID)
	if u.Progress == nil {
		u.Progress = make(map[string]CourseProgress)
	}
	u.Progress[courseID] = CourseProgress{
		CompletedLessons: []string{},
		Submissions:      []Submission{},
	}
	return nil
}

// CourseProgress returns the progress record of an enrolled course.
func (u *User) CourseProgress(courseID string) (CourseProgress, error) {
	if !u.IsEnrolled(courseID) {
		return CourseProgress{}, ErrNotEnrolled
	}
	p, ok := u.Progress[courseID]
	if !ok {
		p = CourseProgress{CompletedLessons: []string{}, Submissions: []Submission{}}
	}
	return p, nil
}

func (u *User) setCourseProgress(courseID string, p CourseProgress) {
	if u.Progress == nil {
		u.Progress = make(map[string]CourseProgress)
	}
	u.Progress[courseID] = p
}

// MarkLessonComplete adds lessonID to the completed set. Calling it again
// with the same lesson leaves the set unchanged.
func (u *User) MarkLessonComplete(courseID, lessonID string) error {
	p, err := u.CourseProgress(courseID)
	if err != nil {
		return err
	}
	if !p.HasCompleted(lessonID) {
		p.CompletedLessons = append(p.CompletedLessons, lessonID)
	}
	u.setCourseProgress(courseID, p)
	return nil
}

// Submit stores sub as the submission for its lesson, replacing any earlier
// one so that each lesson keeps at most one submission.
func (u *User) Submit(courseID string, sub Submission) error {
	p, err := u.CourseProgress(courseID)
	if err != nil {
		return err
	}
	kept := make([]Submission, 0, len(p.Submissions)+1)
	for _, s := range p.Submissions {
		if s.LessonID != sub.LessonID {
			kept = append(kept, s)
		}
	}
	p.Submissions = append(kept, sub)
	u.setCourseProgress(courseID, p)
	return nil
}

// Grade attaches grade and feedback to every submission for lessonID and
// returns the last one updated.
func (u *User) Grade(courseID, lessonID string, grade int, feedback, gradedBy string, at time.Time) (*Submission, error) {
	if grade < 0 || grade > 100 {
		return nil, ErrGradeOutOfRange
	}
	p, ok := u.Progress[courseID]
	if !ok {
		return nil, ErrSubmissionAbsent
	}
	var graded *Submission
	for i := range p.Submissions {
		if p.Submissions[i].LessonID != lessonID {
			continue
		}
		g, f, t := grade, feedback, at
		p.Submissions[i].Grade = &g
		p.Submissions[i].Feedback = &f
		p.Submissions[i].GradedAt = &t
		p.Submissions[i].GradedBy = gradedBy
		graded = &p.Submissions[i]
	}
	if graded == nil {
		return nil, ErrSubmissionAbsent
	}
	u.setCourseProgress(courseID, p)
	out := *graded
	return &out, nil
}

func (p CourseProgress) HasCompleted(lessonID string) bool {
	for _, id := range p.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

func (p CourseProgress) SubmissionFor(lessonID string) (Submission, bool) {
	for _, s := range p.Submissions {
		if s.LessonID == lessonID {
			return s, true
		}
	}
	return Submission{}, false
}

// ========== COURSE HELPERS ==========

func (c *Course) LessonIndex(lessonID string) int {
	for i := range c.Lessons {
		if c.Lessons[i].ID == lessonID {
			return i
		}
	}
	return -1
}

func (c *Course) Lesson(lessonID string) (*Lesson, error) {
	i := c.LessonIndex(lessonID)
	if i < 0 {
		return nil, ErrLessonNotFound
	}
	return &c.Lessons[i], nil
}
