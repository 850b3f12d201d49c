package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"mentorhub/api/internal/config"
	"mentorhub/api/internal/models"
	"mentorhub/api/internal/repository"
)

// fakeUserStore is an in-memory stand-in for repository.UserRepository.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) add(user models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
}

func (f *fakeUserStore) withMentorUsername(user models.User) models.User {
	if user.MentorID != nil {
		if mentor, ok := f.users[*user.MentorID]; ok {
			username := mentor.Username
			user.MentorUsername = &username
		}
	}
	return user
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return f.withMentorUsername(user), nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return f.withMentorUsername(user), nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) FindByUsernames(_ context.Context, usernames []string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]struct{}, len(usernames))
	for _, username := range usernames {
		wanted[username] = struct{}{}
	}
	var resolved []models.User
	for _, user := range f.users {
		if _, ok := wanted[user.Username]; ok {
			resolved = append(resolved, f.withMentorUsername(user))
		}
	}
	return resolved, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []models.User
	for _, user := range f.users {
		users = append(users, f.withMentorUsername(user))
	}
	return users, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id string, email *string, phoneNumber *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Email = email
	user.PhoneNumber = phoneNumber
	f.users[id] = user
	return nil
}

func (f *fakeUserStore) AssignMentor(_ context.Context, mentorID string, menteeIDs []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var assigned int64
	for _, id := range menteeIDs {
		user, ok := f.users[id]
		if !ok {
			continue
		}
		mentor := mentorID
		user.MentorID = &mentor
		f.users[id] = user
		assigned++
	}
	return assigned, nil
}

func (f *fakeUserStore) MenteeUsernames(_ context.Context, mentorID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	usernames := []string{}
	for _, user := range f.users {
		if user.MentorID != nil && *user.MentorID == mentorID {
			usernames = append(usernames, user.Username)
		}
	}
	return usernames, nil
}

// fakeRevocationStore is an in-memory stand-in for repository.BlacklistRepository.
type fakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: make(map[string]time.Time)}
}

func (f *fakeRevocationStore) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = expiresAt
	return nil
}

func (f *fakeRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[jti]
	return ok, nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			JWTAccessSecret:  "test-access-secret-32-characters!!",
			JWTRefreshSecret: "test-refresh-secret-32-characters!",
			JWTAccessTTL:     15 * time.Minute,
			JWTRefreshTTL:    time.Hour,
		},
	}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
