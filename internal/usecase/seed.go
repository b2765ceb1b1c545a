package usecase

import (
	"context"
	"errors"
	"time"

	"eduportal-backend/internal/domain"

	"go.uber.org/zap"
)

type seedUsecase struct {
	users      domain.UserUsecase
	courseRepo domain.CourseRepository
	newsRepo   domain.NewsRepository
	log        *zap.Logger
}

func NewSeedUsecase(users domain.UserUsecase, cr domain.CourseRepository, nr domain.NewsRepository, log *zap.Logger) domain.SeedUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &seedUsecase{users: users, courseRepo: cr, newsRepo: nr, log: log}
}

type seedAccount struct {
	user     domain.User
	password string
}

func seedAccounts() []seedAccount {
	return []seedAccount{
		{domain.User{Email: "admin@eduportalprax.com", Name: "Administrador total", Role: domain.RoleAdmin, Avatar: "👨‍💼"}, "Prax2026"},
		{domain.User{Email: "director@eduportalprax.com", Name: "Dirección General", Role: domain.RoleDirector, Avatar: "🧑‍💼"}, "director123"},
		{domain.User{Email: "docente@eduportalprax.com", Name: "Docente Demo", Role: domain.RoleTeacher, Avatar: "👩‍🏫"}, "docente123"},
		{domain.User{Email: "alumno@test.com", Name: "María García", Role: domain.RoleStudent, Avatar: "👩‍🎓"}, "123456"},
	}
}

func seedCourses(now time.Time) []domain.Course {
	return []domain.Course{
		{
			Title:            "Control Integrado de Vectores",
			Description:      "Aprende las técnicas más modernas de control de vectores urbanos y prevención de enfermedades transmitidas por mosquitos.",
			Instructor:       "Dr. Roberto Sánchez",
			Thumbnail:        "🦟",
			Category:         "Salud Pública",
			Duration:         "8 semanas",
			Level:            domain.LevelIntermediate,
			EnrolledStudents: 45,
			Rating:           4.8,
			CreatedAt:        now.Add(-time.Minute),
			Lessons: []domain.Lesson{
				{
					ID:          "1",
					Title:       "Introducción a la Vectorología",
					Description: "Conceptos fundamentales sobre vectores urbanos",
					VideoURL:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
					Duration:    "45 min",
					Files: []domain.LessonFile{
						{Name: "Manual_Vectores.pdf", Size: "2.4 MB"},
						{Name: "Presentacion_Clase1.pptx", Size: "5.1 MB"},
					},
					Messages: []domain.LessonMessage{{
						ID:        "m1",
						Author:    "Equipo académico",
						Content:   "Bienvenidos a la primera clase. Revisen el material antes del viernes.",
						CreatedAt: now,
					}},
					CreatedAt: now,
				},
				{
					ID:             "2",
					Title:          "Ciclo de Vida del Aedes aegypti",
					Description:    "Estudio detallado del mosquito transmisor del dengue",
					VideoURL:       "https://www.youtube.com/embed/dQw4w9WgXcQ",
					Duration:       "60 min",
					Files:          []domain.LessonFile{{Name: "Ciclo_Aedes.pdf", Size: "1.8 MB"}},
					HasAssignment:  true,
					AssignmentDesc: "Realizar un informe sobre los criaderos identificados en tu zona",
					Messages:       []domain.LessonMessage{},
					CreatedAt:      now,
				},
			},
		},
		{
			Title:            "Gestión Municipal de Residuos",
			Description:      "Estrategias efectivas para la gestión integral de residuos sólidos urbanos.",
			Instructor:       "Ing. Laura Méndez",
			Thumbnail:        "♻️",
			Category:         "Medio Ambiente",
			Duration:         "6 semanas",
			Level:            domain.LevelBasic,
			EnrolledStudents: 32,
			Rating:           4.6,
			CreatedAt:        now,
			Lessons: []domain.Lesson{
				{
					ID:          "1",
					Title:       "Marco Legal Ambiental",
					Description: "Normativa vigente sobre gestión de residuos",
					VideoURL:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
					Duration:    "40 min",
					Files:       []domain.LessonFile{{Name: "Normativa_2024.pdf", Size: "1.5 MB"}},
					Messages:    []domain.LessonMessage{},
					CreatedAt:   now,
				},
			},
		},
	}
}

// SeedInitialData fills an empty portal with the demo accounts, courses and
// a welcome news item. It does nothing when any course exists.
func (uc *seedUsecase) SeedInitialData(ctx context.Context) error {
	count, err := uc.courseRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		uc.log.Info("data already seeded", zap.Int64("courses", count))
		return nil
	}

	for _, acc := range seedAccounts() {
		user := acc.user
		err := uc.users.CreateUser(ctx, &user, acc.password)
		if errors.Is(err, domain.ErrEmailTaken) {
			uc.log.Debug("seed account exists", zap.String("email", user.Email))
			continue
		}
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	for _, c := range seedCourses(now) {
		course := c
		if err := uc.courseRepo.Create(ctx, &course); err != nil {
			return err
		}
	}

	welcome := &domain.News{
		Title:     "¡Bienvenidos al nuevo ciclo lectivo 2025!",
		Content:   "Nos complace anunciar el inicio del ciclo de capacitaciones 2025. Este año contamos con nuevos cursos y material actualizado para todos nuestros alumnos.",
		Author:    "Administración",
		Date:      now.Format(newsDateLayout),
		Important: true,
	}
	if err := uc.newsRepo.Create(ctx, welcome); err != nil {
		return err
	}

	uc.log.Info("initial data seeded")
	return nil
}
