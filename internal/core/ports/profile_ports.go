package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

// ProfileRepository getters return (nil, nil) when no row matches.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Profile, error)
	List(ctx context.Context, page domain.Page) ([]*domain.Profile, int64, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CountByRole(ctx context.Context, roles ...domain.Role) (int64, error)
}

type UserService interface {
	List(ctx context.Context, page domain.Page) (*domain.Paged[*domain.Profile], error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Profile, error)
	Delete(ctx context.Context, id string) error
}
