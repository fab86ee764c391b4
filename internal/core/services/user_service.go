package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const defaultUserPageLimit = 20

type UserService struct {
	repo   ports.ProfileRepository
	logger *slog.Logger
}

func NewUserService(repo ports.ProfileRepository, logger *slog.Logger) ports.UserService {
	return &UserService{
		repo:   repo,
		logger: resolveLogger(logger),
	}
}

func (s *UserService) List(ctx context.Context, page domain.Page) (*domain.Paged[*domain.Profile], error) {
	page = page.Normalize(defaultUserPageLimit)
	profiles, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &domain.Paged[*domain.Profile]{Items: profiles, Meta: domain.NewPageMeta(page, total)}, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	profileID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	user, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrProfileNotFound
	}
	return user, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Profile, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	profileID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	user, err := s.repo.UpdateRole(ctx, profileID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	if user == nil {
		return nil, domain.ErrProfileNotFound
	}

	s.logger.Info("role updated",
		"event", "user_role_updated",
		"module", "user",
		"profile_id", profileID.String(),
		"role", string(role),
	)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	profileID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrProfileNotFound
	}
	deleted, err := s.repo.Delete(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return domain.ErrProfileNotFound
	}
	s.logger.Info("user deleted", "event", "user_deleted", "module", "user", "profile_id", profileID.String())
	return nil
}
