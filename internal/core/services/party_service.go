package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const defaultPartyPageLimit = 20

type partyService struct {
	repo   ports.PartyRepository
	logger *slog.Logger
}

func NewPartyService(repo ports.PartyRepository, logger *slog.Logger) ports.PartyService {
	return &partyService{repo: repo, logger: resolveLogger(logger)}
}

func (s *partyService) List(ctx context.Context, page domain.Page) (*domain.Paged[*domain.Party], error) {
	page = page.Normalize(defaultPartyPageLimit)
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return &domain.Paged[*domain.Party]{Items: items, Meta: domain.NewPageMeta(page, total)}, nil
}

func (s *partyService) Get(ctx context.Context, id int64) (*domain.Party, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get party: %w", err)
	}
	if p == nil {
		return nil, domain.ErrPartyNotFound
	}
	return p, nil
}

func (s *partyService) Create(ctx context.Context, input ports.CreatePartyInput) (*domain.Party, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.Validation("party name is required")
	}
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = domain.DefaultPartyColor
	}
	p := &domain.Party{
		Name:    name,
		LogoURL: strings.TrimSpace(input.LogoURL),
		Policy:  input.Policy,
		Color:   color,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("party created", "event", "party_created", "module", "party", "party_id", p.ID)
	return p, nil
}

func (s *partyService) Update(ctx context.Context, id int64, input ports.UpdatePartyInput) (*domain.Party, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.Validation("party name is required")
		}
		if name != p.Name {
			if err := s.ensureNameFree(ctx, name, p.ID); err != nil {
				return nil, err
			}
		}
		p.Name = name
	}
	if input.LogoURL != nil {
		p.LogoURL = strings.TrimSpace(*input.LogoURL)
	}
	if input.Policy != nil {
		p.Policy = *input.Policy
	}
	if input.Color != nil && strings.TrimSpace(*input.Color) != "" {
		p.Color = strings.TrimSpace(*input.Color)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *partyService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPartyInUse) {
			return err
		}
		return fmt.Errorf("failed to delete party: %w", err)
	}
	if !deleted {
		return domain.ErrPartyNotFound
	}
	s.logger.Info("party deleted", "event", "party_deleted", "module", "party", "party_id", id)
	return nil
}

func (s *partyService) ensureNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get party: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrPartyExists
	}
	return nil
}
