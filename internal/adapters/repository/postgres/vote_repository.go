package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) GetByVoterAndConstituency(ctx context.Context, voterID uuid.UUID, constituencyID int64) (*domain.Vote, error) {
	query := `
		SELECT id, voter_id, candidate_id, constituency_id, cast_at
		FROM votes
		WHERE voter_id = $1 AND constituency_id = $2
	`
	var v domain.Vote
	err := r.db.QueryRowContext(ctx, query, voterID, constituencyID).
		Scan(&v.ID, &v.VoterID, &v.CandidateID, &v.ConstituencyID, &v.CastAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &v, nil
}

// Insert relies on votes_voter_constituency_key: a second ballot for the same
// voter and constituency fails with domain.ErrBallotExists.
func (r *voteRepository) Insert(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (voter_id, candidate_id, constituency_id, cast_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, vote.VoterID, vote.CandidateID, vote.ConstituencyID, vote.CastAt).Scan(&vote.ID)
	if err != nil {
		if mapped := translate(err); errors.Is(mapped, domain.ErrBallotExists) {
			return mapped
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) UpdateCandidate(ctx context.Context, voterID uuid.UUID, constituencyID, candidateID int64, at time.Time) (*domain.Vote, error) {
	query := `
		UPDATE votes SET candidate_id = $1, cast_at = $2
		WHERE voter_id = $3 AND constituency_id = $4
		RETURNING id, voter_id, candidate_id, constituency_id, cast_at
	`
	var v domain.Vote
	err := r.db.QueryRowContext(ctx, query, candidateID, at, voterID, constituencyID).
		Scan(&v.ID, &v.VoterID, &v.CandidateID, &v.ConstituencyID, &v.CastAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update vote: %w", err)
	}
	return &v, nil
}

func (r *voteRepository) CountByCandidate(ctx context.Context, constituencyID *int64) (map[int64]int64, error) {
	query := `
		SELECT candidate_id, COUNT(*)
		FROM votes
		WHERE $1::bigint IS NULL OR constituency_id = $1
		GROUP BY candidate_id
	`
	rows, err := r.db.QueryContext(ctx, query, constituencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var candidateID, n int64
		if err := rows.Scan(&candidateID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		counts[candidateID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tally: %w", err)
	}
	return counts, nil
}

func (r *voteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&n)
	return n, err
}

func (r *voteRepository) CountDistinctVoters(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT voter_id) FROM votes`).Scan(&n)
	return n, err
}
