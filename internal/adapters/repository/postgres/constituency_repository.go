package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type constituencyRepository struct {
	db *sql.DB
}

func NewConstituencyRepository(db *sql.DB) ports.ConstituencyRepository {
	return &constituencyRepository{
		db: db,
	}
}

func (r *constituencyRepository) Create(ctx context.Context, c *domain.Constituency) error {
	query := `
		INSERT INTO constituencies (province, zone_number, is_poll_open)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, c.Province, c.ZoneNumber, c.IsPollOpen).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *constituencyRepository) GetByID(ctx context.Context, id int64) (*domain.Constituency, error) {
	query := `
		SELECT id, province, zone_number, is_poll_open, created_at
		FROM constituencies
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *constituencyRepository) GetByProvinceAndZone(ctx context.Context, province string, zone int) (*domain.Constituency, error) {
	query := `
		SELECT id, province, zone_number, is_poll_open, created_at
		FROM constituencies
		WHERE province = $1 AND zone_number = $2
	`
	return r.getOne(ctx, query, province, zone)
}

func (r *constituencyRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Constituency, error) {
	var c domain.Constituency
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Province, &c.ZoneNumber, &c.IsPollOpen, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get constituency: %w", err)
	}
	return &c, nil
}

func (r *constituencyRepository) List(ctx context.Context, page domain.Page, province string) ([]*domain.Constituency, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM constituencies WHERE $1::text = '' OR province = $1`, province,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count constituencies: %w", err)
	}

	query := `
		SELECT id, province, zone_number, is_poll_open, created_at
		FROM constituencies
		WHERE $1::text = '' OR province = $1
		ORDER BY province, zone_number
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, province, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list constituencies: %w", err)
	}
	defer rows.Close()

	items, err := scanConstituencies(rows)
	return items, total, err
}

func (r *constituencyRepository) ListAll(ctx context.Context) ([]*domain.Constituency, error) {
	query := `
		SELECT id, province, zone_number, is_poll_open, created_at
		FROM constituencies
		ORDER BY province, zone_number
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list constituencies: %w", err)
	}
	defer rows.Close()

	return scanConstituencies(rows)
}

func scanConstituencies(rows *sql.Rows) ([]*domain.Constituency, error) {
	var items []*domain.Constituency
	for rows.Next() {
		var c domain.Constituency
		if err := rows.Scan(&c.ID, &c.Province, &c.ZoneNumber, &c.IsPollOpen, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan constituency: %w", err)
		}
		items = append(items, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating constituencies: %w", err)
	}
	return items, nil
}

func (r *constituencyRepository) SetPollStatus(ctx context.Context, id int64, open bool) (*domain.Constituency, error) {
	query := `
		UPDATE constituencies SET is_poll_open = $1
		WHERE id = $2
		RETURNING id, province, zone_number, is_poll_open, created_at
	`
	return r.getOne(ctx, query, open, id)
}

func (r *constituencyRepository) SetAllPollStatus(ctx context.Context, open bool) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE constituencies SET is_poll_open = $1 WHERE is_poll_open <> $1`, open)
	if err != nil {
		return 0, fmt.Errorf("failed to update poll status: %w", err)
	}
	return res.RowsAffected()
}

func (r *constituencyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM constituencies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete constituency: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *constituencyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM constituencies`).Scan(&n)
	return n, err
}

func (r *constituencyRepository) CountClosed(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM constituencies WHERE NOT is_poll_open`).Scan(&n)
	return n, err
}
