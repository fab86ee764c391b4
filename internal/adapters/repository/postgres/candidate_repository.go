package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const candidateSelect = `
	SELECT
		c.id, c.first_name, c.last_name, c.candidate_number, c.image_url,
		c.personal_policy, c.national_id, c.party_id, c.constituency_id, c.created_at,
		p.id, p.name, p.logo_url, p.policy, p.color, p.created_at,
		k.id, k.province, k.zone_number, k.is_poll_open, k.created_at
	FROM candidates c
	JOIN parties p ON p.id = c.party_id
	JOIN constituencies k ON k.id = c.constituency_id
`

type candidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) ports.CandidateRepository {
	return &candidateRepository{db: db}
}

func scanCandidate(row rowScanner) (*domain.Candidate, error) {
	var (
		c domain.Candidate
		p domain.Party
		k domain.Constituency
	)
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.CandidateNumber, &c.ImageURL,
		&c.PersonalPolicy, &c.NationalID, &c.PartyID, &c.ConstituencyID, &c.CreatedAt,
		&p.ID, &p.Name, &p.LogoURL, &p.Policy, &p.Color, &p.CreatedAt,
		&k.ID, &k.Province, &k.ZoneNumber, &k.IsPollOpen, &k.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Party = &p
	c.Constituency = &k
	return &c, nil
}

func scanCandidates(rows *sql.Rows) ([]*domain.Candidate, error) {
	var candidates []*domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `
		INSERT INTO candidates (
			first_name, last_name, candidate_number, image_url, personal_policy,
			national_id, party_id, constituency_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.FirstName, c.LastName, c.CandidateNumber, c.ImageURL, c.PersonalPolicy,
		c.NationalID, c.PartyID, c.ConstituencyID,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", translate(err))
	}
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	c, err := scanCandidate(r.db.QueryRowContext(ctx, candidateSelect+`WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

func (r *candidateRepository) List(ctx context.Context, page domain.Page, filter ports.CandidateFilter) ([]*domain.Candidate, int64, error) {
	where := `WHERE ($1::bigint IS NULL OR c.constituency_id = $1) AND ($2::bigint IS NULL OR c.party_id = $2)`

	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidates c `+where, filter.ConstituencyID, filter.PartyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	query := candidateSelect + where + ` ORDER BY c.candidate_number, c.id LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, filter.ConstituencyID, filter.PartyID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates, err := scanCandidates(rows)
	return candidates, total, err
}

func (r *candidateRepository) ListWithParty(ctx context.Context, constituencyID *int64) ([]*domain.Candidate, error) {
	query := candidateSelect + `
		WHERE $1::bigint IS NULL OR c.constituency_id = $1
		ORDER BY c.constituency_id, c.candidate_number, c.id
	`
	rows, err := r.db.QueryContext(ctx, query, constituencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	query := `
		UPDATE candidates
		SET first_name = $1, last_name = $2, candidate_number = $3, image_url = $4,
			personal_policy = $5, party_id = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		c.FirstName, c.LastName, c.CandidateNumber, c.ImageURL, c.PersonalPolicy, c.PartyID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", translate(err))
	}
	return nil
}

func (r *candidateRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete candidate: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *candidateRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n)
	return n, err
}
