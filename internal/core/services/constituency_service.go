package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const defaultConstituencyPageLimit = 50

type constituencyService struct {
	repo   ports.ConstituencyRepository
	logger *slog.Logger
}

func NewConstituencyService(repo ports.ConstituencyRepository, logger *slog.Logger) ports.ConstituencyService {
	return &constituencyService{repo: repo, logger: resolveLogger(logger)}
}

func (s *constituencyService) List(ctx context.Context, page domain.Page, province string) (*domain.Paged[*domain.Constituency], error) {
	page = page.Normalize(defaultConstituencyPageLimit)
	items, total, err := s.repo.List(ctx, page, strings.TrimSpace(province))
	if err != nil {
		return nil, fmt.Errorf("failed to list constituencies: %w", err)
	}
	return &domain.Paged[*domain.Constituency]{Items: items, Meta: domain.NewPageMeta(page, total)}, nil
}

func (s *constituencyService) Get(ctx context.Context, id int64) (*domain.Constituency, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get constituency: %w", err)
	}
	if c == nil {
		return nil, domain.ErrConstituencyNotFound
	}
	return c, nil
}

func (s *constituencyService) Create(ctx context.Context, input ports.CreateConstituencyInput) (*domain.Constituency, error) {
	province := strings.TrimSpace(input.Province)
	if province == "" {
		return nil, domain.Validation("province is required")
	}
	if input.ZoneNumber < 1 {
		return nil, domain.Validation("zone number must be at least 1")
	}

	existing, err := s.repo.GetByProvinceAndZone(ctx, province, input.ZoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get constituency: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrConstituencyExists
	}

	c := &domain.Constituency{Province: province, ZoneNumber: input.ZoneNumber, IsPollOpen: true}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("constituency created",
		"event", "constituency_created",
		"module", "constituency",
		"constituency_id", c.ID,
	)
	return c, nil
}

func (s *constituencyService) SetPollStatus(ctx context.Context, id int64, open bool) (*domain.Constituency, error) {
	c, err := s.repo.SetPollStatus(ctx, id, open)
	if err != nil {
		return nil, fmt.Errorf("failed to set poll status: %w", err)
	}
	if c == nil {
		return nil, domain.ErrConstituencyNotFound
	}
	s.logger.Info("poll status changed",
		"event", pollEvent(open),
		"module", "constituency",
		"constituency_id", id,
	)
	return c, nil
}

func (s *constituencyService) OpenAll(ctx context.Context) (int64, error) {
	return s.setAll(ctx, true)
}

func (s *constituencyService) CloseAll(ctx context.Context) (int64, error) {
	return s.setAll(ctx, false)
}

func (s *constituencyService) setAll(ctx context.Context, open bool) (int64, error) {
	n, err := s.repo.SetAllPollStatus(ctx, open)
	if err != nil {
		return 0, fmt.Errorf("failed to set poll status: %w", err)
	}
	s.logger.Info("poll status changed",
		"event", pollEvent(open),
		"module", "constituency",
		"affected", n,
	)
	return n, nil
}

func (s *constituencyService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete constituency: %w", err)
	}
	if !deleted {
		return domain.ErrConstituencyNotFound
	}
	return nil
}

func pollEvent(open bool) string {
	if open {
		return "poll_opened"
	}
	return "poll_closed"
}
