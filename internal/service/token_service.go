package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"mentorhub/api/internal/config"
	"mentorhub/api/internal/models"
	"mentorhub/api/internal/security"
)

var ErrInvalidToken = errors.New("invalid token")

// RevocationStore is the durable record of revoked refresh-token ids.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Identity is the user identity bound into a token.
type Identity struct {
	UserID   string
	Username string
}

type TokenPair struct {
	Access  string
	Refresh string
}

type TokenService struct {
	cfg     *config.AppConfig
	revoked RevocationStore
	log     zerolog.Logger
}

func NewTokenService(cfg *config.AppConfig, revoked RevocationStore, log zerolog.Logger) *TokenService {
	return &TokenService{
		cfg:     cfg,
		revoked: revoked,
		log:     log,
	}
}

// IssuePair mints an access/refresh token pair bound to the user.
func (s *TokenService) IssuePair(user models.User) (TokenPair, error) {
	access, err := security.GenerateAccessToken(
		s.cfg.Security.JWTAccessSecret,
		user.ID,
		user.Username,
		s.cfg.Security.JWTAccessTTL,
	)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := security.GenerateRefreshToken(
		s.cfg.Security.JWTRefreshSecret,
		user.ID,
		user.Username,
		s.cfg.Security.JWTRefreshTTL,
	)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess mints a fresh access token for an already-verified identity.
func (s *TokenService) IssueAccess(identity Identity) (string, error) {
	return security.GenerateAccessToken(
		s.cfg.Security.JWTAccessSecret,
		identity.UserID,
		identity.Username,
		s.cfg.Security.JWTAccessTTL,
	)
}

func (s *TokenService) VerifyAccess(tokenStr string) (Identity, error) {
	claims, err := security.ParseAccessToken(tokenStr, s.cfg.Security.JWTAccessSecret)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.Subject, Username: claims.Username}, nil
}

// VerifyRefresh validates signature and expiry, then rejects revoked tokens.
func (s *TokenService) VerifyRefresh(ctx context.Context, tokenStr string) (Identity, error) {
	claims, err := security.ParseRefreshToken(tokenStr, s.cfg.Security.JWTRefreshSecret)
	if err != nil {
		s.log.Debug().Err(err).Msg("refresh token rejected")
		return Identity{}, ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Identity{}, err
	}
	if revoked {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.Subject, Username: claims.Username}, nil
}

// BlacklistRefresh revokes a refresh token for the remainder of its lifetime.
// A token that cannot be decoded, is expired, or was already revoked fails
// with ErrInvalidToken; the underlying cause stays in the log.
func (s *TokenService) BlacklistRefresh(ctx context.Context, tokenStr string) error {
	claims, err := security.ParseRefreshToken(tokenStr, s.cfg.Security.JWTRefreshSecret)
	if err != nil {
		s.log.Debug().Err(err).Msg("blacklist rejected malformed refresh token")
		return ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		s.log.Debug().Str("jti", claims.ID).Msg("refresh token already blacklisted")
		return ErrInvalidToken
	}

	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
