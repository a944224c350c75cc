package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/core/ports"
)

var _ ports.MasterRepository = (*MasterRepository)(nil)

// MasterRepository reads the m_* reference tables.
type MasterRepository struct {
	pool *pgxpool.Pool
}

func NewMasterRepository(pool *pgxpool.Pool) *MasterRepository {
	return &MasterRepository{pool: pool}
}

func (r *MasterRepository) ListStates(ctx context.Context) ([]domain.State, error) {
	const query = `SELECT state_id, state_name, state_code FROM m_state ORDER BY state_name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.State, error) {
		var s domain.State
		err := row.Scan(&s.ID, &s.Name, &s.Code)
		return s, err
	})
}

func (r *MasterRepository) ListDistricts(ctx context.Context, stateID int64) ([]domain.District, error) {
	const query = `
		SELECT district_id, district_name, district_code, state_id
		FROM m_district WHERE state_id = $1 ORDER BY district_name`
	rows, err := r.pool.Query(ctx, query, stateID)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.District, error) {
		var d domain.District
		err := row.Scan(&d.ID, &d.Name, &d.Code, &d.StateID)
		return d, err
	})
}

func (r *MasterRepository) ListColleges(ctx context.Context, stateID int64) ([]domain.College, error) {
	const query = `
		SELECT college_id, college_name, state_id
		FROM m_college WHERE state_id = $1 ORDER BY college_name`
	rows, err := r.pool.Query(ctx, query, stateID)
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.College, error) {
		var c domain.College
		err := row.Scan(&c.ID, &c.Name, &c.StateID)
		return c, err
	})
}

func (r *MasterRepository) ListCastes(ctx context.Context) ([]domain.Caste, error) {
	const query = `SELECT caste_id, caste_name FROM m_caste ORDER BY caste_name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list castes: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Caste, error) {
		var cs domain.Caste
		err := row.Scan(&cs.ID, &cs.Name)
		return cs, err
	})
}
