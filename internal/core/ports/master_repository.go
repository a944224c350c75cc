package ports

import (
	"context"
	"time"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
)

// MasterRepository reads the master-data reference tables.
type MasterRepository interface {
	ListStates(ctx context.Context) ([]domain.State, error)
	ListDistricts(ctx context.Context, stateID int64) ([]domain.District, error)
	ListColleges(ctx context.Context, stateID int64) ([]domain.College, error)
	ListCastes(ctx context.Context) ([]domain.Caste, error)
}

// MasterCache is a byte-level cache in front of master-data reads. A miss is
// (nil, false, nil); errors are advisory and never block a read.
type MasterCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type MasterService interface {
	States(ctx context.Context) ([]domain.State, error)
	Districts(ctx context.Context, stateID int64) ([]domain.District, error)
	Colleges(ctx context.Context, stateID int64) ([]domain.College, error)
	Castes(ctx context.Context) ([]domain.Caste, error)
}
