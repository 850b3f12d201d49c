package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub/api/internal/models"
)

func newTestMentorshipService(users ...models.User) (*MentorshipService, *fakeUserStore) {
	store := newFakeUserStore()
	for _, user := range users {
		store.add(user)
	}
	return NewMentorshipService(store, testLogger()), store
}

func activeUser(id string, username string) models.User {
	return models.User{ID: id, Username: username, IsActive: true}
}

func TestAssignMenteesSuccess(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestMentorshipService(
		activeUser("m1", "mentor"),
		activeUser("a1", "mentee_1"),
		activeUser("b1", "mentee_2"),
	)

	result, err := svc.AssignMentees(ctx, "mentor", []any{"mentee_1", "mentee_2"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Assigned)
	assert.Equal(t, "mentor", result.Mentor)

	a, err := store.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, a.MentorID)
	assert.Equal(t, "m1", *a.MentorID)

	b, err := store.GetByID(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, b.MentorID)
	assert.Equal(t, "m1", *b.MentorID)
}

func TestAssignMenteesIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestMentorshipService(
		activeUser("m1", "mentor"),
		activeUser("a1", "a"),
		activeUser("b1", "b"),
	)

	for i := 0; i < 2; i++ {
		result, err := svc.AssignMentees(ctx, "mentor", []any{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Assigned)
	}

	a, err := store.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "m1", *a.MentorID)
}

func TestAssignMenteesOverwritesExistingMentor(t *testing.T) {
	ctx := context.Background()
	previous := "old-mentor-id"
	mentee := activeUser("a1", "a")
	mentee.MentorID = &previous
	svc, store := newTestMentorshipService(
		activeUser("m1", "mentor"),
		activeUser("old-mentor-id", "old_mentor"),
		mentee,
	)

	_, err := svc.AssignMentees(ctx, "mentor", []any{"a"})
	require.NoError(t, err)

	a, err := store.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "m1", *a.MentorID)
}

func TestAssignMenteesEmptyList(t *testing.T) {
	svc, _ := newTestMentorshipService(activeUser("m1", "mentor"))

	result, err := svc.AssignMentees(context.Background(), "mentor", []any{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Assigned)
	assert.Equal(t, "mentor", result.Mentor)
}

func TestAssignMenteesMissingFieldIsEmptyList(t *testing.T) {
	svc, _ := newTestMentorshipService(activeUser("m1", "mentor"))

	result, err := svc.AssignMentees(context.Background(), "mentor", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Assigned)
}

func TestAssignMenteesMentorNotFound(t *testing.T) {
	svc, _ := newTestMentorshipService(activeUser("a1", "a"))

	_, err := svc.AssignMentees(context.Background(), "ghost", []any{"a"})
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestAssignMenteesInvalidPayload(t *testing.T) {
	svc, _ := newTestMentorshipService(activeUser("m1", "mentor"))

	_, err := svc.AssignMentees(context.Background(), "mentor", "not-a-list")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AssignMentees(context.Background(), "mentor", []any{"a", 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssignMenteesUnknownUsername(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestMentorshipService(
		activeUser("m1", "mentor"),
		activeUser("a1", "a"),
	)

	_, err := svc.AssignMentees(ctx, "mentor", []any{"a", "ghost"})
	assert.ErrorIs(t, err, ErrUnknownMentees)

	// No partial assignment happened.
	a, err := store.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Nil(t, a.MentorID)
}

func TestAssignMenteesDuplicateUsernamesUnderCount(t *testing.T) {
	// Duplicates are compared against distinct resolved rows, so a repeated
	// existing username still fails as unknown.
	svc, _ := newTestMentorshipService(
		activeUser("m1", "mentor"),
		activeUser("a1", "a"),
	)

	_, err := svc.AssignMentees(context.Background(), "mentor", []any{"a", "a"})
	assert.ErrorIs(t, err, ErrUnknownMentees)
}

func TestAssignMenteesSelfAssignment(t *testing.T) {
	svc, _ := newTestMentorshipService(
		activeUser("m1", "mentor"),
		activeUser("a1", "a"),
	)

	_, err := svc.AssignMentees(context.Background(), "mentor", []any{"mentor"})
	assert.ErrorIs(t, err, ErrSelfAssignment)

	_, err = svc.AssignMentees(context.Background(), "mentor", []any{"a", "mentor"})
	assert.ErrorIs(t, err, ErrSelfAssignment)
}

func TestAssignMenteesPlainStringSlice(t *testing.T) {
	svc, _ := newTestMentorshipService(
		activeUser("m1", "mentor"),
		activeUser("a1", "a"),
	)

	result, err := svc.AssignMentees(context.Background(), "mentor", []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Assigned)
}
