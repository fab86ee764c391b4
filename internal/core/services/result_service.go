package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type resultService struct {
	constituencyRepo ports.ConstituencyRepository
	candidateRepo    ports.CandidateRepository
	partyRepo        ports.PartyRepository
	profileRepo      ports.ProfileRepository
	voteRepo         ports.VoteRepository
}

func NewResultService(
	constituencyRepo ports.ConstituencyRepository,
	candidateRepo ports.CandidateRepository,
	partyRepo ports.PartyRepository,
	profileRepo ports.ProfileRepository,
	voteRepo ports.VoteRepository,
) ports.ResultService {
	return &resultService{
		constituencyRepo: constituencyRepo,
		candidateRepo:    candidateRepo,
		partyRepo:        partyRepo,
		profileRepo:      profileRepo,
		voteRepo:         voteRepo,
	}
}

func (s *resultService) ResultsForConstituency(ctx context.Context, constituencyID int64) (*domain.ConstituencyResult, error) {
	constituency, err := s.constituencyRepo.GetByID(ctx, constituencyID)
	if err != nil {
		return nil, err
	}
	if constituency == nil {
		return nil, nil
	}

	var (
		candidates []*domain.Candidate
		counts     map[int64]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		candidates, err = s.candidateRepo.ListWithParty(gctx, &constituencyID)
		return err
	})
	g.Go(func() (err error) {
		counts, err = s.voteRepo.CountByCandidate(gctx, &constituencyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load results for constituency %d: %w", constituencyID, err)
	}

	result := rankConstituency(constituency, candidates, counts)
	return &result, nil
}

func (s *resultService) AllResults(ctx context.Context) (*domain.AllResults, error) {
	var (
		t          *tally
		totalVotes int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t, err = s.loadTally(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalVotes, err = s.voteRepo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.AllResults{
		Constituencies: t.results,
		TotalVotes:     totalVotes,
	}, nil
}

// PartyStats credits one seat to the party of the leading candidate in every
// constituency whose poll is closed. Open constituencies are still counting
// and are skipped.
func (s *resultService) PartyStats(ctx context.Context) ([]domain.PartySeats, error) {
	var (
		t       *tally
		parties []*domain.Party
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t, err = s.loadTally(gctx)
		return err
	})
	g.Go(func() (err error) {
		parties, err = s.partyRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return seatsByParty(parties, t.results), nil
}

func (s *resultService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var (
		partyStats                      []domain.PartySeats
		totalVotes, totalVoters         int64
		totalConstituencies, closedOnes int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		partyStats, err = s.PartyStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalVotes, err = s.voteRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalVoters, err = s.profileRepo.CountByRole(gctx, domain.RoleVoter)
		return err
	})
	g.Go(func() (err error) {
		totalConstituencies, err = s.constituencyRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		closedOnes, err = s.constituencyRepo.CountClosed(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalVotes:       totalVotes,
		TotalVoters:      totalVoters,
		Turnout:          roundTo(percentage(totalVotes, totalVoters), 2),
		CountingProgress: roundTo(percentage(closedOnes, totalConstituencies), 1),
		PartyStats:       partyStats,
	}, nil
}

type tally struct {
	results []domain.ConstituencyResult
}

// loadTally reads every constituency, candidate and per-candidate count in
// three concurrent queries and ranks them in memory.
func (s *resultService) loadTally(ctx context.Context) (*tally, error) {
	var (
		constituencies []*domain.Constituency
		candidates     []*domain.Candidate
		counts         map[int64]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		constituencies, err = s.constituencyRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		candidates, err = s.candidateRepo.ListWithParty(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		counts, err = s.voteRepo.CountByCandidate(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load election tally: %w", err)
	}

	byConstituency := make(map[int64][]*domain.Candidate, len(constituencies))
	for _, c := range candidates {
		byConstituency[c.ConstituencyID] = append(byConstituency[c.ConstituencyID], c)
	}

	results := make([]domain.ConstituencyResult, 0, len(constituencies))
	for _, c := range constituencies {
		results = append(results, rankConstituency(c, byConstituency[c.ID], counts))
	}
	return &tally{results: results}, nil
}

// rankConstituency sorts by vote count descending. The sort is stable, so
// ties keep the order candidates were read in (ballot number).
func rankConstituency(c *domain.Constituency, candidates []*domain.Candidate, counts map[int64]int64) domain.ConstituencyResult {
	ranked := make([]domain.CandidateResult, 0, len(candidates))
	var total int64
	for _, cand := range candidates {
		r := domain.CandidateResult{
			CandidateID:     cand.ID,
			CandidateName:   cand.FullName(),
			CandidateNumber: cand.CandidateNumber,
			PartyID:         cand.PartyID,
			VoteCount:       counts[cand.ID],
		}
		if cand.Party != nil {
			r.PartyName = cand.Party.Name
			r.PartyColor = cand.Party.Color
		}
		total += r.VoteCount
		ranked = append(ranked, r)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].VoteCount > ranked[j].VoteCount
	})

	return domain.ConstituencyResult{
		ConstituencyID: c.ID,
		Province:       c.Province,
		ZoneNumber:     c.ZoneNumber,
		IsPollOpen:     c.IsPollOpen,
		Candidates:     ranked,
		TotalVotes:     total,
	}
}

func seatsByParty(parties []*domain.Party, results []domain.ConstituencyResult) []domain.PartySeats {
	seats := make(map[int64]int)
	for _, r := range results {
		if r.IsPollOpen || len(r.Candidates) == 0 {
			continue
		}
		seats[r.Candidates[0].PartyID]++
	}

	stats := make([]domain.PartySeats, 0, len(parties))
	for _, p := range parties {
		stats = append(stats, domain.PartySeats{
			ID:      p.ID,
			Name:    p.Name,
			LogoURL: p.LogoURL,
			Color:   p.Color,
			Seats:   seats[p.ID],
		})
	}
	return stats
}

func percentage(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
