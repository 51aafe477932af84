package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebindDollar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name:  "numbers placeholders in order",
			query: "UPDATE users SET last_login_at = ? WHERE username = ?",
			want:  "UPDATE users SET last_login_at = $1 WHERE username = $2",
		},
		{
			name:  "leaves quoted question marks alone",
			query: "SELECT '?' FROM users WHERE username = ?",
			want:  "SELECT '?' FROM users WHERE username = $1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, rebindDollar(tt.query))
		})
	}
}

func TestDB_RebindSQLiteIsIdentity(t *testing.T) {
	t.Parallel()

	db := &DB{driver: DriverSQLite}
	assert.Equal(t, "SELECT ? , ?", db.Rebind("SELECT ? , ?"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{Driver: "oracle"})
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), Config{
		Driver:          DriverSQLite,
		DSN:             filepath.Join(t.TempDir(), "nested", "test.db"),
		ConnMaxLifetime: time.Minute,
		BusyTimeout:     time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func insertUser(ctx context.Context, db *DB, username string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (username, password, first_name, last_name, phone, join_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		username, []byte("hash"), "First", "Last", "555", int64(1), int64(1),
	)

	return err
}

func TestOpen_SQLiteConstraintClassification(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, insertUser(ctx, db, "alice"))

	err := insertUser(ctx, db, "alice")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	_, err = db.ExecContext(ctx,
		"INSERT INTO messages (from_username, to_username, body, sent_at) VALUES (?, ?, ?, ?)",
		"alice", "nobody", "hi", int64(1),
	)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(err))
}

func TestOpen_MigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	require.NoError(t, db.migrate(context.Background()))
}

func TestConstraintClassification_OtherErrors(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	assert.False(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
}

func TestTimestampColumns(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 12, 30, 0, 123456789, time.UTC)

	assert.True(t, now.Equal(FromColumn(ToColumn(now))))
	assert.Nil(t, FromNullColumn(sql.NullInt64{}))

	got := FromNullColumn(sql.NullInt64{Int64: ToColumn(now), Valid: true})
	require.NotNil(t, got)
	assert.True(t, now.Equal(*got))
}
