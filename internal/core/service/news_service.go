package service

import (
	"context"
	"time"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/core/ports"
)

// NewsService manages portal announcements. Reads are public; writes are
// admin-gated at the HTTP layer.
type NewsService struct {
	repo ports.NewsRepository
}

func NewNewsService(repo ports.NewsRepository) *NewsService {
	return &NewsService{repo: repo}
}

func (s *NewsService) ListActive(ctx context.Context) ([]domain.NewsItem, error) {
	return s.repo.ListActive(ctx)
}

func (s *NewsService) GetByID(ctx context.Context, id string) (*domain.NewsItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *NewsService) Create(ctx context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	now := time.Now().UTC()
	item.CreatedAt = now
	if item.StartsAt.IsZero() {
		item.StartsAt = now
	}
	if item.EndsAt.IsZero() {
		item.EndsAt = now.AddDate(0, 1, 0)
	}
	return s.repo.Insert(ctx, item)
}
