package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type voteService struct {
	constituencyRepo ports.ConstituencyRepository
	candidateRepo    ports.CandidateRepository
	voteRepo         ports.VoteRepository
	logger           *slog.Logger
	now              func() time.Time
}

func NewVoteService(
	constituencyRepo ports.ConstituencyRepository,
	candidateRepo ports.CandidateRepository,
	voteRepo ports.VoteRepository,
	logger *slog.Logger,
) ports.VoteService {
	return &voteService{
		constituencyRepo: constituencyRepo,
		candidateRepo:    candidateRepo,
		voteRepo:         voteRepo,
		logger:           resolveLogger(logger),
		now:              time.Now,
	}
}

// Cast records the voter's ballot, or moves the existing one to the new
// candidate. The (voter, constituency) unique key decides races: an insert
// that loses to a concurrent insert falls back to the update path.
func (s *voteService) Cast(ctx context.Context, input ports.VoteInput) (*domain.Vote, domain.BallotOutcome, error) {
	candidate, err := s.checkBallot(ctx, input)
	if err != nil {
		return nil, "", err
	}

	existing, err := s.voteRepo.GetByVoterAndConstituency(ctx, input.VoterID, input.ConstituencyID)
	if err != nil {
		return nil, "", err
	}

	if existing == nil {
		vote := &domain.Vote{
			VoterID:        input.VoterID,
			CandidateID:    input.CandidateID,
			ConstituencyID: input.ConstituencyID,
			CastAt:         s.now(),
		}
		err := s.voteRepo.Insert(ctx, vote)
		if err == nil {
			vote.Candidate = candidate
			s.logBallot(domain.BallotCast, vote)
			return vote, domain.BallotCast, nil
		}
		if !errors.Is(err, domain.ErrBallotExists) {
			return nil, "", err
		}
	}

	vote, err := s.update(ctx, input, candidate)
	if err != nil {
		return nil, "", err
	}
	return vote, domain.BallotChanged, nil
}

// Change moves an existing ballot to another candidate. Unlike Cast it never
// creates a ballot.
func (s *voteService) Change(ctx context.Context, input ports.VoteInput) (*domain.Vote, error) {
	if err := s.checkPollOpen(ctx, input.ConstituencyID); err != nil {
		return nil, err
	}

	existing, err := s.voteRepo.GetByVoterAndConstituency(ctx, input.VoterID, input.ConstituencyID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotVoted
	}

	candidate, err := s.checkCandidate(ctx, input)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, input, candidate)
}

func (s *voteService) MyVote(ctx context.Context, voterID uuid.UUID, constituencyID int64) (*domain.Vote, error) {
	vote, err := s.voteRepo.GetByVoterAndConstituency(ctx, voterID, constituencyID)
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, nil
	}
	candidate, err := s.candidateRepo.GetByID(ctx, vote.CandidateID)
	if err != nil {
		return nil, err
	}
	vote.Candidate = candidate
	return vote, nil
}

func (s *voteService) update(ctx context.Context, input ports.VoteInput, candidate *domain.Candidate) (*domain.Vote, error) {
	vote, err := s.voteRepo.UpdateCandidate(ctx, input.VoterID, input.ConstituencyID, input.CandidateID, s.now())
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, fmt.Errorf("ballot for voter %s in constituency %d vanished during update", input.VoterID, input.ConstituencyID)
	}
	vote.Candidate = candidate
	s.logBallot(domain.BallotChanged, vote)
	return vote, nil
}

func (s *voteService) checkBallot(ctx context.Context, input ports.VoteInput) (*domain.Candidate, error) {
	if err := s.checkPollOpen(ctx, input.ConstituencyID); err != nil {
		return nil, err
	}
	return s.checkCandidate(ctx, input)
}

func (s *voteService) checkPollOpen(ctx context.Context, constituencyID int64) error {
	constituency, err := s.constituencyRepo.GetByID(ctx, constituencyID)
	if err != nil {
		return err
	}
	if constituency == nil {
		return domain.ErrConstituencyNotFound
	}
	if !constituency.IsPollOpen {
		return domain.ErrPollClosed
	}
	return nil
}

func (s *voteService) checkCandidate(ctx context.Context, input ports.VoteInput) (*domain.Candidate, error) {
	candidate, err := s.candidateRepo.GetByID(ctx, input.CandidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, domain.ErrCandidateNotFound
	}
	if candidate.ConstituencyID != input.ConstituencyID {
		return nil, domain.ErrCandidateNotInConstituency
	}
	return candidate, nil
}

func (s *voteService) logBallot(outcome domain.BallotOutcome, vote *domain.Vote) {
	s.logger.Info("ballot recorded",
		"event", "ballot_"+string(outcome),
		"module", "vote",
		"voter_id", vote.VoterID.String(),
		"constituency_id", vote.ConstituencyID,
		"candidate_id", vote.CandidateID,
	)
}
