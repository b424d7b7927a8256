package service

import (
	"context"
	"time"

	"estatehub_backend/internal/auth/password"
	"estatehub_backend/internal/auth/repository"
	"estatehub_backend/internal/auth/token"
	"estatehub_backend/platform/apperr"
	"estatehub_backend/platform/config"
	"estatehub_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

// TokenPair is the result of a successful sign-in or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// SignIn verifies credentials and issues a token pair. Lookup failures and
// password mismatches share one error so the response leaks nothing.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return TokenPair{}, apperr.Unauthorized("invalid credentials")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return TokenPair{}, err
	}

	s.log.Info("user signed in", "userId", user.ID, "role", user.Role)
	return pair, nil
}

// Refresh rotates the refresh token and issues a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	fingerprint := token.Fingerprint(refreshToken)

	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, fingerprint)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("invalid refresh token")
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, fingerprint)
		return TokenPair{}, apperr.Unauthorized("refresh token expired")
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("invalid refresh token")
	}

	// Rotation: the presented token is spent whether or not issuing succeeds.
	_ = s.repo.RevokeRefreshToken(ctx, fingerprint)
	return s.issueTokens(ctx, user)
}

// SignOut revokes the presented refresh token.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	return s.repo.RevokeRefreshToken(ctx, token.Fingerprint(refreshToken))
}

// GetMe returns the authenticated user's account.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (TokenPair, error) {
	accessToken, err := s.signAccessToken(user)
	if err != nil {
		return TokenPair{}, apperr.Internal("failed to sign access token")
	}

	plain, fingerprint, err := token.NewRefreshToken()
	if err != nil {
		return TokenPair{}, apperr.Internal("failed to generate refresh token")
	}

	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, user.ID, fingerprint, expiresAt); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: plain}, nil
}

func (s *Service) signAccessToken(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"type": accessTokenType,
		"exp":  now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":  now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
