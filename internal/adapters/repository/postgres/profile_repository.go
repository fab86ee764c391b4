package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const profileColumns = `
	p.id, p.email, p.password_hash, p.national_id, p.full_name, p.address,
	p.role, p.constituency_id, p.created_at, p.updated_at,
	c.id, c.province, c.zone_number, c.is_poll_open, c.created_at
`

const profileFrom = `
	FROM profiles p
	LEFT JOIN constituencies c ON c.id = p.constituency_id
`

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ports.ProfileRepository {
	return &ProfileRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		p              domain.Profile
		constituencyID sql.NullInt64
		cID            sql.NullInt64
		cProvince      sql.NullString
		cZone          sql.NullInt64
		cOpen          sql.NullBool
		cCreated       sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.NationalID, &p.FullName, &p.Address,
		&p.Role, &constituencyID, &p.CreatedAt, &p.UpdatedAt,
		&cID, &cProvince, &cZone, &cOpen, &cCreated,
	)
	if err != nil {
		return nil, err
	}
	if constituencyID.Valid {
		id := constituencyID.Int64
		p.ConstituencyID = &id
	}
	if cID.Valid {
		p.Constituency = &domain.Constituency{
			ID:         cID.Int64,
			Province:   cProvince.String,
			ZoneNumber: int(cZone.Int64),
			IsPollOpen: cOpen.Bool,
			CreatedAt:  cCreated.Time,
		}
	}
	return &p, nil
}

func (r *ProfileRepository) getOne(ctx context.Context, where string, arg any) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + profileFrom + `WHERE ` + where
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return r.getOne(ctx, `p.id = $1`, id)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getOne(ctx, `p.email = $1`, email)
}

func (r *ProfileRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Profile, error) {
	return r.getOne(ctx, `p.national_id = $1`, nationalID)
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (email, password_hash, national_id, full_name, address, role, constituency_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		profile.Email, profile.PasswordHash, profile.NationalID, profile.FullName,
		profile.Address, profile.Role, profile.ConstituencyID,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *ProfileRepository) List(ctx context.Context, page domain.Page) ([]*domain.Profile, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	query := `SELECT ` + profileColumns + profileFrom + `ORDER BY p.created_at DESC, p.id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*domain.Profile, 0, page.Limit)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.Profile, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE profiles SET role = $1, updated_at = NOW() WHERE id = $2`, role, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *ProfileRepository) CountByRole(ctx context.Context, roles ...domain.Role) (int64, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles WHERE role = ANY($1)`, pq.Array(names)).Scan(&n)
	return n, err
}
