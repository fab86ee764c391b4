package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int
	GoogleClientID  string
}

type AuthService struct {
	profileRepo         ports.ProfileRepository
	constituencyRepo    ports.ConstituencyRepository
	authRepo            ports.AuthRepository
	googleTokenVerifier ports.TokenVerifier
	jwtSecret           []byte
	accessTTL           time.Duration
	refreshTTL          time.Duration
	bcryptCost          int
	googleClientID      string
	logger              *slog.Logger
	now                 func() time.Time
}

func NewAuthService(
	profileRepo ports.ProfileRepository,
	constituencyRepo ports.ConstituencyRepository,
	authRepo ports.AuthRepository,
	googleTokenVerifier ports.TokenVerifier,
	cfg AuthConfig,
	logger *slog.Logger,
) *AuthService {
	logger = resolveLogger(logger)
	if cfg.JWTSecret == "" {
		logger.Warn("JWT secret is empty, tokens are trivially forgeable", "module", "auth")
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = 24 * time.Hour
	}
	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}

	return &AuthService{
		profileRepo:         profileRepo,
		constituencyRepo:    constituencyRepo,
		authRepo:            authRepo,
		googleTokenVerifier: googleTokenVerifier,
		jwtSecret:           []byte(cfg.JWTSecret),
		accessTTL:           cfg.AccessTokenTTL,
		refreshTTL:          cfg.RefreshTokenTTL,
		bcryptCost:          cfg.BcryptCost,
		googleClientID:      cfg.GoogleClientID,
		logger:              logger,
		now:                 time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Session, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	existing, err = s.profileRepo.GetByNationalID(ctx, input.NationalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrNationalIDTaken
	}

	if input.ConstituencyID != nil {
		c, err := s.constituencyRepo.GetByID(ctx, *input.ConstituencyID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrConstituencyNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &domain.Profile{
		Email:          email,
		PasswordHash:   string(hash),
		NationalID:     input.NationalID,
		FullName:       strings.TrimSpace(input.FullName),
		Address:        strings.TrimSpace(input.Address),
		Role:           domain.RoleVoter,
		ConstituencyID: input.ConstituencyID,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile registered",
		"event", "auth_registered",
		"module", "auth",
		"profile_id", profile.ID.String(),
	)
	return s.issueSession(ctx, profile)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		s.logger.Warn("login rejected", "event", "auth_login_failed", "module", "auth", "reason", "unknown_email")
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login rejected", "event", "auth_login_failed", "module", "auth", "reason", "bad_password")
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueSession(ctx, profile)
}

// LoginWithGoogle signs in an already registered profile by the email the
// Google ID token asserts. Registration itself needs a national id, so an
// unknown email is not auto-provisioned.
func (s *AuthService) LoginWithGoogle(ctx context.Context, googleToken string) (*domain.Session, error) {
	if s.googleClientID == "" || s.googleTokenVerifier == nil {
		return nil, domain.ErrGoogleSignInDisabled
	}

	payload, err := s.googleTokenVerifier.Verify(ctx, googleToken, s.googleClientID)
	if err != nil {
		s.logger.Warn("google token rejected", "event", "auth_google_failed", "module", "auth", "error", err.Error())
		return nil, domain.ErrInvalidToken
	}

	profile, err := s.profileRepo.GetByEmail(ctx, normalizeEmail(payload.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}

	return s.issueSession(ctx, profile)
}

func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	tokenHash := s.hashToken(refreshToken)

	rtEntity, err := s.authRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	if rtEntity == nil || rtEntity.Revoked || rtEntity.ExpiresAt.Before(s.now()) {
		return "", domain.ErrInvalidToken
	}

	profile, err := s.profileRepo.GetByID(ctx, rtEntity.ProfileID)
	if err != nil {
		return "", fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return "", domain.ErrInvalidToken
	}

	accessToken, err := s.generateAccessToken(profile)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	tokenHash := s.hashToken(refreshToken)

	rtEntity, err := s.authRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to get refresh token: %w", err)
	}
	if rtEntity == nil {
		return nil
	}

	return s.authRepo.RevokeRefreshToken(ctx, rtEntity.ID.String())
}

func (s *AuthService) Profile(ctx context.Context, id string) (*domain.Profile, error) {
	profileID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *AuthService) ParseAccessToken(token string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.jwtSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	profileID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	if !domain.Role(role).Valid() {
		return nil, domain.ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return &domain.Identity{ProfileID: profileID, Email: email, Role: domain.Role(role)}, nil
}

func (s *AuthService) issueSession(ctx context.Context, profile *domain.Profile) (*domain.Session, error) {
	accessToken, err := s.generateAccessToken(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if _, err := s.authRepo.DeleteExpiredRefreshTokens(ctx, profile.ID, s.now()); err != nil {
		s.logger.Warn("refresh token prune failed", "module", "auth", "profile_id", profile.ID.String(), "error", err.Error())
	}

	rtEntity := &domain.RefreshToken{
		ProfileID: profile.ID,
		TokenHash: s.hashToken(refreshToken),
		ExpiresAt: s.now().Add(s.refreshTTL),
		Revoked:   false,
	}
	if err := s.authRepo.StoreRefreshToken(ctx, rtEntity); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      profile,
	}, nil
}

func (s *AuthService) generateAccessToken(profile *domain.Profile) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   profile.ID.String(),
		"email": profile.Email,
		"role":  string(profile.Role),
		"exp":   now.Add(s.accessTTL).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
