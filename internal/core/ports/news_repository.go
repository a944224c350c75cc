package ports

import (
	"context"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
)

// NewsRepository persists portal announcements. GetByID returns
// domain.ErrNewsNotFound for unknown or malformed ids.
type NewsRepository interface {
	Insert(ctx context.Context, item *domain.NewsItem) (*domain.NewsItem, error)
	ListActive(ctx context.Context) ([]domain.NewsItem, error)
	GetByID(ctx context.Context, id string) (*domain.NewsItem, error)
}

type NewsService interface {
	ListActive(ctx context.Context) ([]domain.NewsItem, error)
	GetByID(ctx context.Context, id string) (*domain.NewsItem, error)
	Create(ctx context.Context, item *domain.NewsItem) (*domain.NewsItem, error)
}
