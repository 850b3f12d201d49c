package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"mentorhub/api/internal/models"
)

var ErrPermissionDenied = errors.New("permission denied")

// ProfileStore is the slice of the user store the profile service needs.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, email *string, phoneNumber *string) error
	MenteeUsernames(ctx context.Context, mentorID string) ([]string, error)
}

// Profile is the viewer-dependent representation of a user. The password hash
// is only exposed to the user it belongs to, and the mentee list only for
// staff accounts.
type Profile struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	PhoneNumber *string  `json:"phone_number"`
	Email       *string  `json:"email"`
	Password    *string  `json:"password"`
	Mentor      *string  `json:"mentor"`
	Mentees     []string `json:"mentees"`
}

type UserService struct {
	users ProfileStore
	log   zerolog.Logger
}

func NewUserService(users ProfileStore, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		log:   log,
	}
}

func (s *UserService) List(ctx context.Context, viewerID string) ([]Profile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(users))
	for _, user := range users {
		profile, err := s.represent(ctx, viewerID, user)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (s *UserService) Get(ctx context.Context, viewerID string, id string) (Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	return s.represent(ctx, viewerID, user)
}

type ProfilePatch struct {
	Email       *string
	PhoneNumber *string
}

// Update applies a partial profile edit. Only the owner may edit; nil patch
// fields leave the current value in place.
func (s *UserService) Update(ctx context.Context, viewerID string, id string, patch ProfilePatch) (Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}

	if user.ID != viewerID {
		return Profile{}, ErrPermissionDenied
	}

	email := user.Email
	if patch.Email != nil {
		email = patch.Email
	}
	phoneNumber := user.PhoneNumber
	if patch.PhoneNumber != nil {
		phoneNumber = patch.PhoneNumber
	}

	if err := s.users.UpdateProfile(ctx, user.ID, email, phoneNumber); err != nil {
		return Profile{}, err
	}

	user.Email = email
	user.PhoneNumber = phoneNumber
	return s.represent(ctx, viewerID, user)
}

func (s *UserService) represent(ctx context.Context, viewerID string, user models.User) (Profile, error) {
	profile := Profile{
		ID:          user.ID,
		Username:    user.Username,
		PhoneNumber: user.PhoneNumber,
		Email:       user.Email,
		Mentor:      user.MentorUsername,
		Mentees:     []string{},
	}

	if viewerID == user.ID {
		hash := string(user.PasswordHash)
		profile.Password = &hash
	}

	if user.IsStaff {
		mentees, err := s.users.MenteeUsernames(ctx, user.ID)
		if err != nil {
			return Profile{}, err
		}
		profile.Mentees = mentees
	}

	return profile, nil
}
