package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/mkrupp/messagely/internal/domain"
	"github.com/mkrupp/messagely/internal/infra/database"
	"github.com/mkrupp/messagely/internal/infra/logging"
)

// SQLUserRepository implements Repository on top of the shared relational store.
type SQLUserRepository struct {
	db  *database.DB
	log logging.Logger
}

var _ Repository = (*SQLUserRepository)(nil)

// NewSQLUserRepository creates a user repository backed by db.
func NewSQLUserRepository(db *database.DB) *SQLUserRepository {
	return &SQLUserRepository{
		db: db,
		log: logging.GetLogger("repo.user.sql_user_repository").With(
			logging.Group("db", "driver", db.Driver()),
		),
	}
}

// CreateUser implements Repository.CreateUser.
func (r *SQLUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password, first_name, last_name, phone, join_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		database.ToColumn(user.JoinAt),
		database.ToColumn(user.LastLoginAt),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			err = errors.Join(domain.ErrUserAlreadyExists, err)
		}

		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetUser implements Repository.GetUser.
func (r *SQLUserRepository) GetUser(ctx context.Context, username string) (*domain.User, error) {
	var (
		user        domain.User
		joinAt      int64
		lastLoginAt int64
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT username, password, first_name, last_name, phone, join_at, last_login_at
		FROM users
		WHERE username = ?`,
		username,
	).Scan(&user.Username, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Phone, &joinAt, &lastLoginAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = errors.Join(domain.ErrUserNotFound, err)
		}

		return nil, fmt.Errorf("query user: %w", err)
	}

	user.JoinAt = database.FromColumn(joinAt)
	user.LastLoginAt = database.FromColumn(lastLoginAt)

	return &user, nil
}

// UpdateLoginTimestamp implements Repository.UpdateLoginTimestamp.
func (r *SQLUserRepository) UpdateLoginTimestamp(ctx context.Context, username string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET last_login_at = ? WHERE username = ?",
		database.ToColumn(at),
		username,
	)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.log.DebugContext(ctx, "last login not updated, no such user", "username", username)
	}

	return nil
}

// ListUsers implements Repository.ListUsers.
func (r *SQLUserRepository) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT username, first_name, last_name, phone
		FROM users
		ORDER BY username`,
	)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []domain.UserSummary{}

	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Phone); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// messageRow is a message joined with the profile of the other party.
type messageRow struct {
	id     domain.MessageID
	other  domain.UserSummary
	body   string
	sentAt time.Time
	readAt *time.Time
}

// listMessages returns the messages whose ownCol equals username, joined with
// the user referenced by otherCol.
func (r *SQLUserRepository) listMessages(ctx context.Context, ownCol, otherCol, username string) ([]messageRow, error) {
	//nolint:gosec // column names are constants chosen by the callers below
	query := fmt.Sprintf(
		`SELECT m.id, u.username, u.first_name, u.last_name, u.phone, m.body, m.sent_at, m.read_at
		FROM messages AS m
		JOIN users AS u ON u.username = m.%s
		WHERE m.%s = ?
		ORDER BY m.id`,
		otherCol, ownCol,
	)

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var result []messageRow

	for rows.Next() {
		var (
			row    messageRow
			sentAt int64
			readAt sql.NullInt64
		)

		if err := rows.Scan(
			&row.id,
			&row.other.Username, &row.other.FirstName, &row.other.LastName, &row.other.Phone,
			&row.body, &sentAt, &readAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}

		row.sentAt = database.FromColumn(sentAt)
		row.readAt = database.FromNullColumn(readAt)

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	if len(result) == 0 {
		return nil, domain.ErrMessagesNotFound
	}

	return result, nil
}

// ListMessagesFrom implements Repository.ListMessagesFrom.
func (r *SQLUserRepository) ListMessagesFrom(ctx context.Context, username string) ([]domain.SentMessage, error) {
	rows, err := r.listMessages(ctx, "from_username", "to_username", username)
	if err != nil {
		return nil, fmt.Errorf("list messages from: %w", err)
	}

	return lo.Map(rows, func(row messageRow, _ int) domain.SentMessage {
		return domain.SentMessage{
			ID:     row.id,
			ToUser: row.other,
			Body:   row.body,
			SentAt: row.sentAt,
			ReadAt: row.readAt,
		}
	}), nil
}

// ListMessagesTo implements Repository.ListMessagesTo.
func (r *SQLUserRepository) ListMessagesTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error) {
	rows, err := r.listMessages(ctx, "to_username", "from_username", username)
	if err != nil {
		return nil, fmt.Errorf("list messages to: %w", err)
	}

	return lo.Map(rows, func(row messageRow, _ int) domain.ReceivedMessage {
		return domain.ReceivedMessage{
			ID:       row.id,
			FromUser: row.other,
			Body:     row.body,
			SentAt:   row.sentAt,
			ReadAt:   row.readAt,
		}
	}), nil
}
