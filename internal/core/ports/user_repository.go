package ports

import (
	"context"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
)

// UserRepository is the persistence contract for identity records. The
// backing store owns the unique constraint on email: Create must surface a
// constraint violation as domain.ErrEmailTaken, which is the authoritative
// duplicate signal (no pre-insert lookup).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
