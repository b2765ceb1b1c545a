package usecase

import (
	"context"
	"math"

	"eduportal-backend/internal/domain"
)

type dashboardUsecase struct {
	userRepo   domain.UserRepository
	courseRepo domain.CourseRepository
	newsRepo   domain.NewsRepository
}

func NewDashboardUsecase(
	ur domain.UserRepository,
	cr domain.CourseRepository,
	nr domain.NewsRepository,
) domain.DashboardUsecase {
	return &dashboardUsecase{
		userRepo:   ur,
		courseRepo: cr,
		newsRepo:   nr,
	}
}

func (uc *dashboardUsecase) GetStudentProgress(ctx context.Context, userID string) (*domain.StudentProgressData, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	courses, err := uc.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	news, err := uc.newsRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	data := &domain.StudentProgressData{
		User:          user,
		Courses:       []domain.CourseProgressReport{},
		ImportantNews: []domain.News{},
	}

	// Courses that no longer exist are skipped
	var allSubs []domain.Submission
	for i := range courses {
		course := &courses[i]
		if !user.IsEnrolled(course.ID) {
			continue
		}
		p := user.Progress[course.ID]
		report := buildCourseReport(p, course)
		data.Courses = append(data.Courses, report)

		data.EnrolledCourses++
		data.TotalLessons += report.TotalLessons
		data.TotalCompletedLessons += report.CompletedLessons
		data.GradedSubmissions += report.GradedCount
		data.PendingSubmissions += report.PendingCount
		allSubs = append(allSubs, p.Submissions...)

		switch report.Status {
		case domain.CourseCompleted:
			data.CompletedCourses++
		case domain.CourseInProgress:
			data.InProgressCourses++
		default:
			data.NotStartedCourses++
		}
	}
	data.AverageGrade = domain.AverageGradePtr(allSubs)
	if data.TotalLessons > 0 {
		data.OverallPercent = int(math.Round(float64(data.TotalCompletedLessons) / float64(data.TotalLessons) * 100))
	}

	for _, n := range news {
		if n.Important {
			data.ImportantNews = append(data.ImportantNews, n)
		}
	}
	return data, nil
}

func (uc *dashboardUsecase) GetAnalytics(ctx context.Context) (*domain.AnalyticsData, error) {
	students, err := uc.userRepo.GetByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	courses, err := uc.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	data := &domain.AnalyticsData{
		TotalCourses:      len(courses),
		TotalStudents:     len(students),
		CoursesByCategory: map[string]int{},
	}
	for _, c := range courses {
		data.TotalEnrollments += c.EnrolledStudents
		data.TotalLessons += len(c.Lessons)
		data.CoursesByCategory[c.Category]++
	}

	views := joinSubmissions(students, courses)
	subs := make([]domain.Submission, 0, len(views))
	for _, v := range views {
		subs = append(subs, v.Submission)
	}
	data.TotalSubmissions = len(subs)
	data.PendingSubmissions, data.GradedSubmissions = domain.CountPending(subs)
	data.AverageGrade = domain.AverageGradePtr(subs)
	data.PassRate = domain.PassRatePtr(subs)
	return data, nil
}
