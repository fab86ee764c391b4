package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const defaultCandidatePageLimit = 20

type candidateService struct {
	repo             ports.CandidateRepository
	partyRepo        ports.PartyRepository
	constituencyRepo ports.ConstituencyRepository
	profileRepo      ports.ProfileRepository
	logger           *slog.Logger
}

func NewCandidateService(
	repo ports.CandidateRepository,
	partyRepo ports.PartyRepository,
	constituencyRepo ports.ConstituencyRepository,
	profileRepo ports.ProfileRepository,
	logger *slog.Logger,
) ports.CandidateService {
	return &candidateService{
		repo:             repo,
		partyRepo:        partyRepo,
		constituencyRepo: constituencyRepo,
		profileRepo:      profileRepo,
		logger:           resolveLogger(logger),
	}
}

func (s *candidateService) List(ctx context.Context, page domain.Page, filter ports.CandidateFilter) (*domain.Paged[*domain.Candidate], error) {
	page = page.Normalize(defaultCandidatePageLimit)
	items, total, err := s.repo.List(ctx, page, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return &domain.Paged[*domain.Candidate]{Items: items, Meta: domain.NewPageMeta(page, total)}, nil
}

func (s *candidateService) ListByConstituency(ctx context.Context, constituencyID int64) ([]*domain.Candidate, error) {
	c, err := s.constituencyRepo.GetByID(ctx, constituencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get constituency: %w", err)
	}
	if c == nil {
		return nil, domain.ErrConstituencyNotFound
	}
	candidates, err := s.repo.ListWithParty(ctx, &constituencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (s *candidateService) Get(ctx context.Context, id int64) (*domain.Candidate, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	if c == nil {
		return nil, domain.ErrCandidateNotFound
	}
	return c, nil
}

func (s *candidateService) Create(ctx context.Context, input ports.CreateCandidateInput) (*domain.Candidate, error) {
	c := &domain.Candidate{
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		CandidateNumber: input.CandidateNumber,
		ImageURL:        strings.TrimSpace(input.ImageURL),
		PersonalPolicy:  input.PersonalPolicy,
		NationalID:      strings.TrimSpace(input.NationalID),
		PartyID:         input.PartyID,
		ConstituencyID:  input.ConstituencyID,
	}
	if c.FirstName == "" || c.LastName == "" {
		return nil, domain.Validation("candidate first and last name are required")
	}
	if c.CandidateNumber < 1 {
		return nil, domain.Validation("candidate number must be at least 1")
	}
	if c.NationalID == "" {
		return nil, domain.Validation("candidate national id is required")
	}

	officer, err := s.profileRepo.GetByNationalID(ctx, c.NationalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if officer != nil && officer.Role == domain.RoleEC {
		return nil, domain.ErrCandidateIsOfficer
	}

	party, err := s.partyRepo.GetByID(ctx, c.PartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get party: %w", err)
	}
	if party == nil {
		return nil, domain.ErrPartyNotFound
	}
	constituency, err := s.constituencyRepo.GetByID(ctx, c.ConstituencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get constituency: %w", err)
	}
	if constituency == nil {
		return nil, domain.ErrConstituencyNotFound
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Party = party
	c.Constituency = constituency

	s.logger.Info("candidate registered",
		"event", "candidate_created",
		"module", "candidate",
		"candidate_id", c.ID,
		"constituency_id", c.ConstituencyID,
	)
	return c, nil
}

func (s *candidateService) Update(ctx context.Context, id int64, input ports.UpdateCandidateInput) (*domain.Candidate, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		c.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		c.LastName = strings.TrimSpace(*input.LastName)
	}
	if c.FirstName == "" || c.LastName == "" {
		return nil, domain.Validation("candidate first and last name are required")
	}
	if input.CandidateNumber != nil {
		if *input.CandidateNumber < 1 {
			return nil, domain.Validation("candidate number must be at least 1")
		}
		c.CandidateNumber = *input.CandidateNumber
	}
	if input.ImageURL != nil {
		c.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.PersonalPolicy != nil {
		c.PersonalPolicy = *input.PersonalPolicy
	}
	if input.PartyID != nil && *input.PartyID != c.PartyID {
		party, err := s.partyRepo.GetByID(ctx, *input.PartyID)
		if err != nil {
			return nil, fmt.Errorf("failed to get party: %w", err)
		}
		if party == nil {
			return nil, domain.ErrPartyNotFound
		}
		c.PartyID = party.ID
		c.Party = party
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *candidateService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if !deleted {
		return domain.ErrCandidateNotFound
	}
	s.logger.Info("candidate deleted", "event", "candidate_deleted", "module", "candidate", "candidate_id", id)
	return nil
}
