package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/core/ports"
)

const masterCacheTTL = 10 * time.Minute

// MasterService serves the read-only reference lists with a cache-aside
// layer in front of the database. Cache failures degrade to a direct read,
// never to a request failure.
type MasterService struct {
	repo  ports.MasterRepository
	cache ports.MasterCache
	log   zerolog.Logger
}

func NewMasterService(repo ports.MasterRepository, cache ports.MasterCache, log zerolog.Logger) *MasterService {
	return &MasterService{repo: repo, cache: cache, log: log}
}

func (s *MasterService) States(ctx context.Context) ([]domain.State, error) {
	return cached(ctx, s, "master:states", func() ([]domain.State, error) {
		return s.repo.ListStates(ctx)
	})
}

func (s *MasterService) Districts(ctx context.Context, stateID int64) ([]domain.District, error) {
	key := "master:districts:" + strconv.FormatInt(stateID, 10)
	return cached(ctx, s, key, func() ([]domain.District, error) {
		return s.repo.ListDistricts(ctx, stateID)
	})
}

func (s *MasterService) Colleges(ctx context.Context, stateID int64) ([]domain.College, error) {
	key := "master:colleges:" + strconv.FormatInt(stateID, 10)
	return cached(ctx, s, key, func() ([]domain.College, error) {
		return s.repo.ListColleges(ctx, stateID)
	})
}

func (s *MasterService) Castes(ctx context.Context) ([]domain.Caste, error) {
	return cached(ctx, s, "master:castes", func() ([]domain.Caste, error) {
		return s.repo.ListCastes(ctx)
	})
}

// cached wraps a repository read with the cache-aside pattern.
func cached[T any](ctx context.Context, s *MasterService, key string, load func() ([]T, error)) ([]T, error) {
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("master cache read failed")
	} else if ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		s.log.Warn().Str("key", key).Msg("master cache entry is corrupt, reloading")
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := s.cache.Set(ctx, key, raw, masterCacheTTL); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("master cache write failed")
		}
	}
	return items, nil
}
