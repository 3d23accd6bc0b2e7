package sqlite

import (
	"context"
	"testing"

	"github.com/codelane/identity/internal/identity/domain"
	"github.com/codelane/identity/internal/identity/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testUser(username, email string) domain.User {
	return domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		Name:         "Test User",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		IsActive:     true,
	}
}

func TestUsersRepo_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("alice", "alice@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, u.Username, byID.Username)
	require.True(t, byID.IsActive)
	require.False(t, byID.IsSuperuser)
	require.False(t, byID.IsVerified)
	require.False(t, byID.CreatedAt.IsZero())

	byUsername, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byUsername.ID)

	byEmail, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestUsersRepo_LookupsAreExact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().CreateUser(ctx, testUser("alice", "alice@example.com")))

	// No normalization is applied on lookup.
	_, err := s.Users().GetUserByUsername(ctx, "Alice")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByEmail(ctx, "ALICE@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersRepo_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().GetUserByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersRepo_UniqueConstraints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().CreateUser(ctx, testUser("alice", "alice@example.com")))

	err := s.Users().CreateUser(ctx, testUser("alice", "other@example.com"))
	require.ErrorIs(t, err, store.ErrUsernameExists)

	err = s.Users().CreateUser(ctx, testUser("bob", "alice@example.com"))
	require.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUsersRepo_SetUserActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("alice", "alice@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().SetUserActive(ctx, u.ID, false))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	// Record still exists; deactivation is not deletion.
	_, err = s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)

	err = s.Users().SetUserActive(ctx, uuid.NewString(), false)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("alice", "alice@example.com")
	sentinel := store.ErrNotFound

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound, "insert should have been rolled back")
}
