package usecase

import (
	"context"
	"sort"

	"eduportal-backend/internal/domain"
)

type submissionUsecase struct {
	userRepo   domain.UserRepository
	courseRepo domain.CourseRepository
}

func NewSubmissionUsecase(ur domain.UserRepository, cr domain.CourseRepository) domain.SubmissionUsecase {
	return &submissionUsecase{userRepo: ur, courseRepo: cr}
}

// GetAllSubmissions rebuilds the list from every student's progress on each
// call.
func (uc *submissionUsecase) GetAllSubmissions(ctx context.Context, filter domain.SubmissionFilter) ([]domain.SubmissionView, error) {
	views, err := uc.collect(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SubmissionView, 0, len(views))
	for _, v := range views {
		if filter.CourseID != "" && v.CourseID != filter.CourseID {
			continue
		}
		switch filter.Status {
		case domain.SubmissionsPending:
			if !v.Pending() {
				continue
			}
		case domain.SubmissionsGraded:
			if v.Pending() {
				continue
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (uc *submissionUsecase) GetSubmissionBoard(ctx context.Context) (*domain.SubmissionBoard, error) {
	views, err := uc.collect(ctx)
	if err != nil {
		return nil, err
	}
	board := &domain.SubmissionBoard{
		Pending: []domain.SubmissionView{},
		Graded:  []domain.SubmissionView{},
	}
	for _, v := range views {
		if v.Pending() {
			board.Pending = append(board.Pending, v)
		} else {
			board.Graded = append(board.Graded, v)
		}
	}
	return board, nil
}

func (uc *submissionUsecase) collect(ctx context.Context) ([]domain.SubmissionView, error) {
	students, err := uc.userRepo.GetByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	courses, err := uc.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return joinSubmissions(students, courses), nil
}

// joinSubmissions flattens the submissions of every student and attaches
// course and lesson titles. Submissions of deleted courses or lessons keep
// empty titles. The result is ordered newest first.
func joinSubmissions(students []domain.User, courses []domain.Course) []domain.SubmissionView {
	byID := make(map[string]*domain.Course, len(courses))
	for i := range courses {
		byID[courses[i].ID] = &courses[i]
	}

	views := []domain.SubmissionView{}
	for _, student := range students {
		for courseID, progress := range student.Progress {
			course := byID[courseID]
			for _, sub := range progress.Submissions {
				v := domain.SubmissionView{
					Submission:    sub,
					StudentID:     student.ID,
					StudentName:   student.Name,
					StudentAvatar: student.Avatar,
					CourseID:      courseID,
				}
				if course != nil {
					v.CourseTitle = course.Title
					if lesson, err := course.Lesson(sub.LessonID); err == nil {
						v.LessonTitle = lesson.Title
					}
				}
				views = append(views, v)
			}
		}
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].SubmittedAt.After(views[j].SubmittedAt)
	})
	return views
}
