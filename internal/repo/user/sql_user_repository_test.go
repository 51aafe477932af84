package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrupp/messagely/internal/domain"
	"github.com/mkrupp/messagely/internal/infra/database/databasetest"
	"github.com/mkrupp/messagely/internal/repo/message"
	. "github.com/mkrupp/messagely/internal/repo/user"
)

var baseTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestUser(username string) *domain.User {
	return &domain.User{
		Username:     username,
		PasswordHash: []byte("hash-of-" + username),
		FirstName:    "First " + username,
		LastName:     "Last " + username,
		Phone:        "555-" + username,
		JoinAt:       baseTime,
		LastLoginAt:  baseTime,
	}
}

func setupUserRepo(t *testing.T, usernames ...string) (*SQLUserRepository, *message.SQLMessageRepository) {
	t.Helper()

	db := databasetest.NewSQLite(t)
	repo := NewSQLUserRepository(db)

	for _, username := range usernames {
		require.NoError(t, repo.CreateUser(context.Background(), newTestUser(username)))
	}

	return repo, message.NewSQLMessageRepository(db)
}

func TestSQLUserRepository_CreateUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := setupUserRepo(t)

	require.NoError(t, repo.CreateUser(ctx, newTestUser("alice")))

	dup := newTestUser("alice")
	dup.FirstName = "Impostor"

	err := repo.CreateUser(ctx, dup)
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	require.ErrorIs(t, err, domain.ErrConflict)

	stored, err := repo.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "First alice", stored.FirstName, "duplicate insert must not overwrite")
}

func TestSQLUserRepository_GetUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := setupUserRepo(t, "alice")

	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "existing user", username: "alice"},
		{name: "unknown user", username: "nobody", wantErr: domain.ErrUserNotFound},
		{name: "empty username", username: "", wantErr: domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := repo.GetUser(ctx, tt.username)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, domain.ErrNotFound)

				return
			}

			require.NoError(t, err)

			want := newTestUser(tt.username)
			assert.Equal(t, want.Username, got.Username)
			assert.Equal(t, want.PasswordHash, got.PasswordHash)
			assert.Equal(t, want.Summary(), got.Summary())
			assert.True(t, want.JoinAt.Equal(got.JoinAt))
			assert.True(t, want.LastLoginAt.Equal(got.LastLoginAt))
		})
	}
}

func TestSQLUserRepository_UpdateLoginTimestamp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := setupUserRepo(t, "alice")

	later := baseTime.Add(time.Hour)
	require.NoError(t, repo.UpdateLoginTimestamp(ctx, "alice", later))

	got, err := repo.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, later.Equal(got.LastLoginAt))
	assert.True(t, baseTime.Equal(got.JoinAt), "join_at is immutable")

	require.NoError(t, repo.UpdateLoginTimestamp(ctx, "nobody", later), "unknown users are silently ignored")
}

func TestSQLUserRepository_ListUsers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	empty, _ := setupUserRepo(t)
	users, err := empty.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	repo, _ := setupUserRepo(t, "carol", "alice", "bob")
	users, err = repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"},
		[]string{users[0].Username, users[1].Username, users[2].Username})
	assert.Equal(t, newTestUser("bob").Summary(), users[1])
}

func TestSQLUserRepository_ListMessages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, messages := setupUserRepo(t, "alice", "bob", "carol")

	for i, m := range []struct{ from, to, body string }{
		{"alice", "bob", "hi bob"},
		{"alice", "carol", "hi carol"},
		{"bob", "alice", "hi alice"},
	} {
		msg := &domain.Message{
			FromUsername: m.from,
			ToUsername:   m.to,
			Body:         m.body,
			SentAt:       baseTime.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, messages.CreateMessage(ctx, msg))
	}

	_, err := messages.MarkRead(ctx, 1, baseTime.Add(time.Hour))
	require.NoError(t, err)

	t.Run("from alice", func(t *testing.T) {
		t.Parallel()

		sent, err := repo.ListMessagesFrom(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, sent, 2)

		assert.Equal(t, domain.MessageID(1), sent[0].ID)
		assert.Equal(t, newTestUser("bob").Summary(), sent[0].ToUser)
		assert.Equal(t, "hi bob", sent[0].Body)
		assert.True(t, baseTime.Equal(sent[0].SentAt))
		require.NotNil(t, sent[0].ReadAt)
		assert.True(t, baseTime.Add(time.Hour).Equal(*sent[0].ReadAt))

		assert.Equal(t, "carol", sent[1].ToUser.Username)
		assert.Nil(t, sent[1].ReadAt)
	})

	t.Run("to alice", func(t *testing.T) {
		t.Parallel()

		received, err := repo.ListMessagesTo(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, newTestUser("bob").Summary(), received[0].FromUser)
		assert.Equal(t, "hi alice", received[0].Body)
	})

	t.Run("no messages and unknown user are indistinguishable", func(t *testing.T) {
		t.Parallel()

		_, errNoSent := repo.ListMessagesFrom(ctx, "carol")
		_, errUnknown := repo.ListMessagesFrom(ctx, "nobody")

		require.ErrorIs(t, errNoSent, domain.ErrMessagesNotFound)
		require.ErrorIs(t, errUnknown, domain.ErrMessagesNotFound)

		_, errNoReceived := repo.ListMessagesTo(ctx, "nobody")
		require.ErrorIs(t, errNoReceived, domain.ErrNotFound)
	})
}
