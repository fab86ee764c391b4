package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type statsService struct {
	profileRepo      ports.ProfileRepository
	constituencyRepo ports.ConstituencyRepository
	partyRepo        ports.PartyRepository
	candidateRepo    ports.CandidateRepository
	voteRepo         ports.VoteRepository
}

func NewStatsService(
	profileRepo ports.ProfileRepository,
	constituencyRepo ports.ConstituencyRepository,
	partyRepo ports.PartyRepository,
	candidateRepo ports.CandidateRepository,
	voteRepo ports.VoteRepository,
) ports.StatsService {
	return &statsService{
		profileRepo:      profileRepo,
		constituencyRepo: constituencyRepo,
		partyRepo:        partyRepo,
		candidateRepo:    candidateRepo,
		voteRepo:         voteRepo,
	}
}

func (s *statsService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalVoters, err = s.profileRepo.CountByRole(gctx, domain.RoleVoter)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalConstituencies, err = s.constituencyRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalOfficers, err = s.profileRepo.CountByRole(gctx, domain.RoleAdmin, domain.RoleEC)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *statsService) ECStats(ctx context.Context) (*domain.ECStats, error) {
	var (
		stats       domain.ECStats
		totalVoters int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalParties, err = s.partyRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalCandidates, err = s.candidateRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.VotedCount, err = s.voteRepo.CountDistinctVoters(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalVoters, err = s.profileRepo.CountByRole(gctx, domain.RoleVoter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.VotedPercentage = roundTo(percentage(stats.VotedCount, totalVoters), 1)
	return &stats, nil
}
