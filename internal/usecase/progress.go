package usecase

import (
	"context"
	"strings"
	"time"

	"eduportal-backend/internal/domain"
)

type progressUsecase struct {
	userRepo   domain.UserRepository
	courseRepo domain.CourseRepository
	uow        domain.UnitOfWork
}

func NewProgressUsecase(repos domain.Repositories, uow domain.UnitOfWork) domain.ProgressUsecase {
	return &progressUsecase{
		userRepo:   repos.Users,
		courseRepo: repos.Courses,
		uow:        uow,
	}
}

// Enroll writes the user's enrollment and the course counter in one
// transaction.
func (uc *progressUsecase) Enroll(ctx context.Context, userID, courseID string) (*domain.User, error) {
	var enrolled *domain.User
	err := uc.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		course, err := repos.Courses.GetByID(ctx, courseID)
		if err != nil {
			return err
		}

		if err := user.Enroll(courseID); err != nil {
			return err
		}
		if err := repos.Users.Update(ctx, user); err != nil {
			return err
		}

		course.EnrolledStudents++
		if err := repos.Courses.Update(ctx, course); err != nil {
			return err
		}
		enrolled = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enrolled, nil
}

func (uc *progressUsecase) MarkLessonComplete(ctx context.Context, userID, courseID, lessonID string) (*domain.User, error) {
	user, course, err := uc.load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !user.IsEnrolled(courseID) {
		return nil, domain.ErrNotEnrolled
	}
	if _, err := course.Lesson(lessonID); err != nil {
		return nil, err
	}

	if err := user.MarkLessonComplete(courseID, lessonID); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *progressUsecase) SubmitAssignment(ctx context.Context, userID, courseID, lessonID string, file domain.FileMeta) (*domain.Submission, error) {
	if strings.TrimSpace(file.FileName) == "" {
		return nil, domain.Validation("Seleccioná un archivo para entregar")
	}
	user, course, err := uc.load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !user.IsEnrolled(courseID) {
		return nil, domain.ErrNotEnrolled
	}
	lesson, err := course.Lesson(lessonID)
	if err != nil {
		return nil, err
	}
	if !lesson.HasAssignment {
		return nil, domain.ErrNoAssignment
	}

	sub := domain.Submission{
		LessonID:    lessonID,
		File:        strings.TrimSpace(file.FileName),
		SubmittedAt: time.Now().UTC(),
	}
	if file.FileURL != "" {
		url := file.FileURL
		sub.FileURL = &url
	}
	if err := user.Submit(courseID, sub); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (uc *progressUsecase) GradeSubmission(ctx context.Context, in domain.GradeInput) (*domain.Submission, error) {
	if in.Grade < 0 || in.Grade > 100 {
		return nil, domain.ErrGradeOutOfRange
	}
	user, err := uc.userRepo.GetByID(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}

	sub, err := user.Grade(in.CourseID, in.LessonID, in.Grade, in.Feedback, in.GradedBy, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return sub, nil
}

func (uc *progressUsecase) GetCourseProgress(ctx context.Context, userID, courseID string) (*domain.CourseProgressReport, error) {
	user, course, err := uc.load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	p, err := user.CourseProgress(courseID)
	if err != nil {
		return nil, err
	}
	report := buildCourseReport(p, course)
	return &report, nil
}

func (uc *progressUsecase) load(ctx context.Context, userID, courseID string) (*domain.User, *domain.Course, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	return user, course, nil
}

func buildCourseReport(p domain.CourseProgress, course *domain.Course) domain.CourseProgressReport {
	pending, graded := domain.CountPending(p.Submissions)
	subs := p.Submissions
	if subs == nil {
		subs = []domain.Submission{}
	}
	return domain.CourseProgressReport{
		CourseID:         course.ID,
		CourseTitle:      course.Title,
		Thumbnail:        course.Thumbnail,
		CompletedLessons: domain.CompletedCount(p, course),
		TotalLessons:     len(course.Lessons),
		Percent:          domain.ProgressPercent(p, course),
		Status:           domain.StatusOf(p, course),
		AverageGrade:     domain.AverageGradePtr(p.Submissions),
		GradedCount:      graded,
		PendingCount:     pending,
		Submissions:      subs,
	}
}
