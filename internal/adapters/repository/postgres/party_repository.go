package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const partyColumns = `id, name, logo_url, policy, color, created_at`

type partyRepository struct {
	db *sql.DB
}

func NewPartyRepository(db *sql.DB) ports.PartyRepository {
	return &partyRepository{db: db}
}

func (r *partyRepository) Create(ctx context.Context, p *domain.Party) error {
	query := `
		INSERT INTO parties (name, logo_url, policy, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, p.Name, p.LogoURL, p.Policy, p.Color).Scan(&p.ID, &p.CreatedAt); err != nil {
		return translate(err)
	}
	return nil
}

func (r *partyRepository) GetByID(ctx context.Context, id int64) (*domain.Party, error) {
	return r.getOne(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = $1`, id)
}

func (r *partyRepository) GetByName(ctx context.Context, name string) (*domain.Party, error) {
	return r.getOne(ctx, `SELECT `+partyColumns+` FROM parties WHERE name = $1`, name)
}

func (r *partyRepository) getOne(ctx context.Context, query string, arg any) (*domain.Party, error) {
	var p domain.Party
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Name, &p.LogoURL, &p.Policy, &p.Color, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get party: %w", err)
	}
	return &p, nil
}

func (r *partyRepository) List(ctx context.Context, page domain.Page) ([]*domain.Party, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count parties: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+partyColumns+` FROM parties ORDER BY name LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	parties, err := scanParties(rows)
	return parties, total, err
}

func (r *partyRepository) ListAll(ctx context.Context) ([]*domain.Party, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+partyColumns+` FROM parties ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	return scanParties(rows)
}

func scanParties(rows *sql.Rows) ([]*domain.Party, error) {
	var parties []*domain.Party
	for rows.Next() {
		var p domain.Party
		if err := rows.Scan(&p.ID, &p.Name, &p.LogoURL, &p.Policy, &p.Color, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parties: %w", err)
	}
	return parties, nil
}

func (r *partyRepository) Update(ctx context.Context, p *domain.Party) error {
	query := `UPDATE parties SET name = $1, logo_url = $2, policy = $3, color = $4 WHERE id = $5`
	if _, err := r.db.ExecContext(ctx, query, p.Name, p.LogoURL, p.Policy, p.Color, p.ID); err != nil {
		return translate(err)
	}
	return nil
}

// Delete fails with domain.ErrPartyInUse while candidates still reference
// the party.
func (r *partyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrPartyInUse
		}
		return false, fmt.Errorf("failed to delete party: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *partyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM parties`).Scan(&n)
	return n, err
}
