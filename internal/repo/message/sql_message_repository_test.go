package message_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrupp/messagely/internal/domain"
	"github.com/mkrupp/messagely/internal/infra/database/databasetest"
	. "github.com/mkrupp/messagely/internal/repo/message"
	"github.com/mkrupp/messagely/internal/repo/user"
)

var sentAt = time.Date(2026, 3, 4, 5, 6, 7, 8, time.UTC)

func setupMessageRepo(t *testing.T) *SQLMessageRepository {
	t.Helper()

	db := databasetest.NewSQLite(t)
	users := user.NewSQLUserRepository(db)

	for _, username := range []string{"alice", "bob"} {
		require.NoError(t, users.CreateUser(context.Background(), &domain.User{
			Username:     username,
			PasswordHash: []byte("x"),
			FirstName:    "F-" + username,
			LastName:     "L-" + username,
			Phone:        "P-" + username,
			JoinAt:       sentAt,
			LastLoginAt:  sentAt,
		}))
	}

	return NewSQLMessageRepository(db)
}

func TestSQLMessageRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := setupMessageRepo(t)

	msg := &domain.Message{FromUsername: "alice", ToUsername: "bob", Body: "hi", SentAt: sentAt}
	require.NoError(t, repo.CreateMessage(ctx, msg))
	assert.NotZero(t, msg.ID)

	second := &domain.Message{FromUsername: "bob", ToUsername: "alice", Body: "hey", SentAt: sentAt}
	require.NoError(t, repo.CreateMessage(ctx, second))
	assert.NotEqual(t, msg.ID, second.ID)

	got, err := repo.GetMessage(ctx, msg.ID)
	require.NoError(t, err)

	assert.Equal(t, msg.ID, got.ID)
	assert.Equal(t, "hi", got.Body)
	assert.True(t, sentAt.Equal(got.SentAt))
	assert.Nil(t, got.ReadAt)
	assert.Equal(t, domain.UserSummary{Username: "alice", FirstName: "F-alice", LastName: "L-alice", Phone: "P-alice"}, got.FromUser)
	assert.Equal(t, domain.UserSummary{Username: "bob", FirstName: "F-bob", LastName: "L-bob", Phone: "P-bob"}, got.ToUser)
}

func TestSQLMessageRepository_CreateUnknownUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := setupMessageRepo(t)

	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "unknown recipient", from: "alice", to: "nobody"},
		{name: "unknown sender", from: "nobody", to: "bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := repo.CreateMessage(ctx, &domain.Message{FromUsername: tt.from, ToUsername: tt.to, Body: "x", SentAt: sentAt})
			require.Error(t, err)
			assert.NotErrorIs(t, err, domain.ErrNotFound)
			assert.NotErrorIs(t, err, domain.ErrConflict)
		})
	}
}

func TestSQLMessageRepository_GetUnknown(t *testing.T) {
	t.Parallel()

	_, err := setupMessageRepo(t).GetMessage(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestSQLMessageRepository_MarkRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := setupMessageRepo(t)

	msg := &domain.Message{FromUsername: "alice", ToUsername: "bob", Body: "hi", SentAt: sentAt}
	require.NoError(t, repo.CreateMessage(ctx, msg))

	firstRead := sentAt.Add(time.Second)

	receipt, err := repo.MarkRead(ctx, msg.ID, firstRead)
	require.NoError(t, err)
	assert.Equal(t, msg.ID, receipt.ID)
	assert.True(t, firstRead.Equal(receipt.ReadAt))

	got, err := repo.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReadAt)
	assert.True(t, got.ReadAt.After(got.SentAt))

	secondRead := firstRead.Add(time.Second)

	_, err = repo.MarkRead(ctx, msg.ID, secondRead)
	require.NoError(t, err, "marking twice overwrites")

	got, err = repo.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, secondRead.Equal(*got.ReadAt))

	_, err = repo.MarkRead(ctx, msg.ID+100, secondRead)
	require.ErrorIs(t, err, domain.ErrMessageNotFound)
}
