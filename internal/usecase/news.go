package usecase

import (
	"context"
	"strings"
	"time"

	"eduportal-backend/internal/domain"
)

const newsDateLayout = "2006-01-02"

type newsUsecase struct {
	newsRepo domain.NewsRepository
}

func NewNewsUsecase(nr domain.NewsRepository) domain.NewsUsecase {
	return &newsUsecase{newsRepo: nr}
}

func (uc *newsUsecase) CreateNews(ctx context.Context, in domain.NewsInput) (*domain.News, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, domain.Validation("Título y contenido son obligatorios")
	}
	date := in.Date
	if date == "" {
		date = time.Now().Format(newsDateLayout)
	} else if _, err := time.Parse(newsDateLayout, date); err != nil {
		return nil, domain.Validation("La fecha debe tener el formato AAAA-MM-DD")
	}

	news := &domain.News{
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Author:    in.Author,
		Date:      date,
		Important: in.Important,
	}
	if err := uc.newsRepo.Create(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (uc *newsUsecase) UpdateNews(ctx context.Context, id string, patch domain.NewsPatch) (*domain.News, error) {
	news, err := uc.newsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		news.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		news.Content = *patch.Content
	}
	if patch.Author != nil {
		news.Author = *patch.Author
	}
	if patch.Date != nil {
		if _, err := time.Parse(newsDateLayout, *patch.Date); err != nil {
			return nil, domain.Validation("La fecha debe tener el formato AAAA-MM-DD")
		}
		news.Date = *patch.Date
	}
	if patch.Important != nil {
		news.Important = *patch.Important
	}
	if news.Title == "" || news.Content == "" {
		return nil, domain.Validation("Título y contenido son obligatorios")
	}

	if err := uc.newsRepo.Update(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (uc *newsUsecase) DeleteNews(ctx context.Context, id string) error {
	return uc.newsRepo.Delete(ctx, id)
}

func (uc *newsUsecase) GetAllNews(ctx context.Context) ([]domain.News, error) {
	return uc.newsRepo.GetAll(ctx)
}

func (uc *newsUsecase) GetNews(ctx context.Context, id string) (*domain.News, error) {
	return uc.newsRepo.GetByID(ctx, id)
}
