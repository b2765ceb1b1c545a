package app

import (
	"context"

	"eduportal-backend/config"
	"eduportal-backend/internal/domain"
	"eduportal-backend/internal/repository"
	"eduportal-backend/internal/usecase"

	"go.uber.org/zap"
)

// App holds the opened store and every usecase built on top of it.
type App struct {
	Store      repository.Store
	Log        *zap.Logger
	Auth       domain.AuthUsecase
	Users      domain.UserUsecase
	Courses    domain.CourseUsecase
	Progress   domain.ProgressUsecase
	Submission domain.SubmissionUsecase
	Dashboard  domain.DashboardUsecase
	News       domain.NewsUsecase
	Seed       domain.SeedUsecase
}

// New connects the configured store and wires the usecases.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	store, err := config.ConnectStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return Wire(store, cfg, log), nil
}

// Wire builds the usecases on an already opened store.
func Wire(store repository.Store, cfg *config.Config, log *zap.Logger) *App {
	repos := store.Repositories()

	authUsecase := usecase.NewAuthUsecase(repos.Users, usecase.SessionConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.SessionTTL,
	})
	userUsecase := usecase.NewUserUsecase(repos.Users)

	return &App{
		Store:      store,
		Log:        log,
		Auth:       authUsecase,
		Users:      userUsecase,
		Courses:    usecase.NewCourseUsecase(repos.Courses),
		Progress:   usecase.NewProgressUsecase(repos, store),
		Submission: usecase.NewSubmissionUsecase(repos.Users, repos.Courses),
		Dashboard:  usecase.NewDashboardUsecase(repos.Users, repos.Courses, repos.News),
		News:       usecase.NewNewsUsecase(repos.News),
		Seed:       usecase.NewSeedUsecase(userUsecase, repos.Courses, repos.News, log),
	}
}

func (a *App) Close() error {
	return a.Store.Close()
}
