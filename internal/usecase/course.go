package usecase

import (
	"context"
	"strings"
	"time"

	"eduportal-backend/internal/domain"

	"github.com/google/uuid"
)

type courseUsecase struct {
	courseRepo domain.CourseRepository
}

func NewCourseUsecase(cr domain.CourseRepository) domain.CourseUsecase {
	return &courseUsecase{courseRepo: cr}
}

// ========== COURSE CRUD ==========

func (uc *courseUsecase) CreateCourse(ctx context.Context, in domain.CourseInput) (*domain.Course, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.Validation("El título es obligatorio")
	}
	level := in.Level
	if level == "" {
		level = domain.LevelBasic
	}
	if !level.Valid() {
		return nil, domain.Validation("Nivel inválido")
	}

	course := &domain.Course{
		Title:            strings.TrimSpace(in.Title),
		Description:      in.Description,
		Instructor:       in.Instructor,
		Category:         in.Category,
		Level:            level,
		Thumbnail:        in.Thumbnail,
		Duration:         in.Duration,
		EnrolledStudents: 0,
		Rating:           in.Rating,
		Lessons:          []domain.Lesson{},
	}
	if err := uc.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *courseUsecase) UpdateCourse(ctx context.Context, id string, patch domain.CoursePatch) (*domain.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update only the fields present in the patch
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, domain.Validation("El título es obligatorio")
		}
		course.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Instructor != nil {
		course.Instructor = *patch.Instructor
	}
	if patch.Category != nil {
		course.Category = *patch.Category
	}
	if patch.Level != nil {
		if !patch.Level.Valid() {
			return nil, domain.Validation("Nivel inválido")
		}
		course.Level = *patch.Level
	}
	if patch.Thumbnail != nil {
		course.Thumbnail = *patch.Thumbnail
	}
	if patch.Duration != nil {
		course.Duration = *patch.Duration
	}
	if patch.Rating != nil {
		course.Rating = *patch.Rating
	}

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes the course document only. Enrollments and progress
// that reference it stay on the user documents.
func (uc *courseUsecase) DeleteCourse(ctx context.Context, id string) error {
	return uc.courseRepo.Delete(ctx, id)
}

func (uc *courseUsecase) GetAllCourses(ctx context.Context) ([]domain.Course, error) {
	return uc.courseRepo.GetAll(ctx)
}

func (uc *courseUsecase) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	return uc.courseRepo.GetByID(ctx, id)
}

// ========== LESSONS ==========

func (uc *courseUsecase) AddLesson(ctx context.Context, courseID string, in domain.LessonInput) (*domain.Lesson, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.Validation("El título de la clase es obligatorio")
	}
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lesson := domain.Lesson{
		ID:             uc.newLessonID(course),
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		VideoURL:       in.VideoURL,
		Duration:       in.Duration,
		Files:          in.Files,
		HasAssignment:  in.HasAssignment,
		AssignmentDesc: in.AssignmentDesc,
		Messages:       []domain.LessonMessage{},
		CreatedAt:      time.Now().UTC(),
	}
	if lesson.Files == nil {
		lesson.Files = []domain.LessonFile{}
	}
	if !lesson.HasAssignment {
		lesson.AssignmentDesc = ""
	}
	course.Lessons = append(course.Lessons, lesson)

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (uc *courseUsecase) newLessonID(course *domain.Course) string {
	for {
		id := uuid.NewString()
		if course.LessonIndex(id) < 0 {
			return id
		}
	}
}

func (uc *courseUsecase) UpdateLesson(ctx context.Context, courseID, lessonID string, patch domain.LessonPatch) (*domain.Lesson, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	lesson, err := course.Lesson(lessonID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, domain.Validation("El título de la clase es obligatorio")
		}
		lesson.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		lesson.Description = *patch.Description
	}
	if patch.VideoURL != nil {
		lesson.VideoURL = *patch.VideoURL
	}
	if patch.Duration != nil {
		lesson.Duration = *patch.Duration
	}
	if patch.Files != nil {
		lesson.Files = *patch.Files
	}
	if patch.HasAssignment != nil {
		lesson.HasAssignment = *patch.HasAssignment
	}
	if patch.AssignmentDesc != nil {
		lesson.AssignmentDesc = *patch.AssignmentDesc
	}

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	out := *lesson
	return &out, nil
}

// DeleteLesson removes the lesson from the course. Completed ids and
// submissions that point at it are left in user progress.
func (uc *courseUsecase) DeleteLesson(ctx context.Context, courseID, lessonID string) (*domain.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	i := course.LessonIndex(lessonID)
	if i < 0 {
		return nil, domain.ErrLessonNotFound
	}
	course.Lessons = append(course.Lessons[:i], course.Lessons[i+1:]...)

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *courseUsecase) PostLessonMessage(ctx context.Context, courseID, lessonID, author, content string) (*domain.LessonMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Validation("El mensaje no puede estar vacío")
	}
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	lesson, err := course.Lesson(lessonID)
	if err != nil {
		return nil, err
	}

	msg := domain.LessonMessage{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	lesson.Messages = append(lesson.Messages, msg)

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return &msg, nil
}
