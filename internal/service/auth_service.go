package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"mentorhub/api/internal/ids"
	"mentorhub/api/internal/models"
	"mentorhub/api/internal/repository"
	"mentorhub/api/internal/security"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrMissingToken         = errors.New("refresh token is required")
	ErrUsernameTaken        = errors.New("username already taken")
)

// CredentialStore is the slice of the user store the auth service needs.
type CredentialStore interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

type AuthService struct {
	users  CredentialStore
	tokens *TokenService
	log    zerolog.Logger
}

func NewAuthService(users CredentialStore, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

type RegisterInput struct {
	Username    string
	Password    string
	Email       *string
	PhoneNumber *string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return models.User{}, errors.New("username and password required")
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		PasswordHash: passwordHash,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login checks credentials and issues a token pair. Unknown usernames, wrong
// passwords, and inactive accounts all fail with the same error; the cause is
// only distinguished in the debug log.
func (s *AuthService) Login(ctx context.Context, username string, password string) (TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.log.Debug().Str("username", username).Msg("login failed: unknown username")
			return TokenPair{}, ErrAuthenticationFailed
		}
		return TokenPair{}, err
	}

	if !user.IsActive {
		s.log.Debug().Str("username", username).Msg("login failed: inactive account")
		return TokenPair{}, ErrAuthenticationFailed
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		s.log.Debug().Str("username", username).Msg("login failed: password mismatch")
		return TokenPair{}, ErrAuthenticationFailed
	}

	return s.tokens.IssuePair(user)
}

// Refresh exchanges a valid, non-revoked refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrMissingToken
	}

	identity, err := s.tokens.VerifyRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	return s.tokens.IssueAccess(identity)
}

// Logout revokes the refresh token. Any blacklist failure surfaces as
// ErrInvalidToken so the client response stays uniform.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrMissingToken
	}

	if err := s.tokens.BlacklistRefresh(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return ErrInvalidToken
		}
		s.log.Error().Err(err).Msg("logout: blacklist store failure")
		return ErrInvalidToken
	}
	return nil
}
