package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string) error
	// DeleteExpiredRefreshTokens drops the profile's expired or revoked
	// tokens and reports how many were removed.
	DeleteExpiredRefreshTokens(ctx context.Context, profileID uuid.UUID, before time.Time) (int64, error)
}

type TokenPayload struct {
	Email string
	Name  string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string, clientID string) (*TokenPayload, error)
}

// TokenValidator resolves a bearer access token into the identity it was
// issued for.
type TokenValidator interface {
	ParseAccessToken(token string) (*domain.Identity, error)
}

type RegisterInput struct {
	Email          string
	Password       string
	NationalID     string
	FullName       string
	Address        string
	ConstituencyID *int64
}

type AuthService interface {
	TokenValidator
	Register(ctx context.Context, input RegisterInput) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	LoginWithGoogle(ctx context.Context, googleToken string) (*domain.Session, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, id string) (*domain.Profile, error)
}
