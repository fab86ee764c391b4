package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

type VoteRepository interface {
	// GetByVoterAndConstituency returns (nil, nil) when the voter has no
	// ballot there.
	GetByVoterAndConstituency(ctx context.Context, voterID uuid.UUID, constituencyID int64) (*domain.Vote, error)
	// Insert fails with domain.ErrBallotExists when a ballot for the same
	// (voter, constituency) is already stored.
	Insert(ctx context.Context, vote *domain.Vote) error
	UpdateCandidate(ctx context.Context, voterID uuid.UUID, constituencyID, candidateID int64, at time.Time) (*domain.Vote, error)
	// CountByCandidate tallies ballots per candidate id. A nil
	// constituencyID tallies every constituency.
	CountByCandidate(ctx context.Context, constituencyID *int64) (map[int64]int64, error)
	Count(ctx context.Context) (int64, error)
	CountDistinctVoters(ctx context.Context) (int64, error)
}

type VoteInput struct {
	VoterID        uuid.UUID
	CandidateID    int64
	ConstituencyID int64
}

type VoteService interface {
	Cast(ctx context.Context, input VoteInput) (*domain.Vote, domain.BallotOutcome, error)
	Change(ctx context.Context, input VoteInput) (*domain.Vote, error)
	MyVote(ctx context.Context, voterID uuid.UUID, constituencyID int64) (*domain.Vote, error)
}

type ResultService interface {
	// ResultsForConstituency returns (nil, nil) for an unknown constituency.
	ResultsForConstituency(ctx context.Context, constituencyID int64) (*domain.ConstituencyResult, error)
	AllResults(ctx context.Context) (*domain.AllResults, error)
	PartyStats(ctx context.Context) ([]domain.PartySeats, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

type StatsService interface {
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
	ECStats(ctx context.Context) (*domain.ECStats, error)
}
