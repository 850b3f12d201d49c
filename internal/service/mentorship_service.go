package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"mentorhub/api/internal/models"
	"mentorhub/api/internal/repository"
)

var (
	ErrMentorNotFound = errors.New("mentor not found")
	ErrInvalidInput   = errors.New("mentees must be an array of usernames")
	ErrUnknownMentees = errors.New("one or more mentee usernames do not exist")
	ErrSelfAssignment = errors.New("cannot assign a mentor as their own mentee")
)

// MentorDirectory is the slice of the user store the mentorship service needs.
type MentorDirectory interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByUsernames(ctx context.Context, usernames []string) ([]models.User, error)
	AssignMentor(ctx context.Context, mentorID string, menteeIDs []string) (int64, error)
}

type MentorshipService struct {
	users MentorDirectory
	log   zerolog.Logger
}

func NewMentorshipService(users MentorDirectory, log zerolog.Logger) *MentorshipService {
	return &MentorshipService{
		users: users,
		log:   log,
	}
}

type AssignResult struct {
	Assigned int
	Mentor   string
}

// AssignMentees points every listed user at the mentor. The checks run in a
// fixed order: mentor lookup, payload shape, mentee resolution, self
// assignment. The mentee count is compared against the raw request list, so a
// duplicated username under-counts and fails as unknown.
func (s *MentorshipService) AssignMentees(ctx context.Context, mentorUsername string, mentees any) (AssignResult, error) {
	mentor, err := s.users.FindByUsername(ctx, mentorUsername)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AssignResult{}, ErrMentorNotFound
		}
		return AssignResult{}, err
	}

	usernames, ok := coerceUsernames(mentees)
	if !ok {
		return AssignResult{}, ErrInvalidInput
	}

	resolved, err := s.users.FindByUsernames(ctx, usernames)
	if err != nil {
		return AssignResult{}, err
	}
	if len(resolved) != len(usernames) {
		return AssignResult{}, ErrUnknownMentees
	}

	for _, username := range usernames {
		if username == mentor.Username {
			return AssignResult{}, ErrSelfAssignment
		}
	}

	menteeIDs := make([]string, 0, len(resolved))
	for _, mentee := range resolved {
		menteeIDs = append(menteeIDs, mentee.ID)
	}

	if _, err := s.users.AssignMentor(ctx, mentor.ID, menteeIDs); err != nil {
		return AssignResult{}, err
	}

	s.log.Info().
		Str("mentor", mentor.Username).
		Int("mentees", len(menteeIDs)).
		Msg("mentees assigned")

	return AssignResult{Assigned: len(resolved), Mentor: mentor.Username}, nil
}

// coerceUsernames accepts the decoded JSON value of the mentees field. A
// missing field counts as an empty list.
func coerceUsernames(v any) ([]string, bool) {
	switch list := v.(type) {
	case nil:
		return []string{}, true
	case []string:
		return list, true
	case []any:
		usernames := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			usernames = append(usernames, s)
		}
		return usernames, true
	default:
		return nil, false
	}
}
