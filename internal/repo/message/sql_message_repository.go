package message

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkrupp/messagely/internal/domain"
	"github.com/mkrupp/messagely/internal/infra/database"
	"github.com/mkrupp/messagely/internal/infra/logging"
)

// SQLMessageRepository implements Repository on top of the shared relational store.
type SQLMessageRepository struct {
	db  *database.DB
	log logging.Logger
}

var _ Repository = (*SQLMessageRepository)(nil)

// NewSQLMessageRepository creates a message repository backed by db.
func NewSQLMessageRepository(db *database.DB) *SQLMessageRepository {
	return &SQLMessageRepository{
		db: db,
		log: logging.GetLogger("repo.message.sql_message_repository").With(
			logging.Group("db", "driver", db.Driver()),
		),
	}
}

// CreateMessage implements Repository.CreateMessage.
func (r *SQLMessageRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO messages (from_username, to_username, body, sent_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		msg.FromUsername,
		msg.ToUsername,
		msg.Body,
		database.ToColumn(msg.SentAt),
	).Scan(&msg.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			r.log.DebugContext(ctx, "message references unknown user",
				"from", msg.FromUsername, "to", msg.ToUsername)
		}

		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

// GetMessage implements Repository.GetMessage.
func (r *SQLMessageRepository) GetMessage(ctx context.Context, id domain.MessageID) (*domain.MessageDetail, error) {
	var (
		msg    domain.MessageDetail
		sentAt int64
		readAt sql.NullInt64
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT m.id, m.body, m.sent_at, m.read_at,
			f.username, f.first_name, f.last_name, f.phone,
			t.username, t.first_name, t.last_name, t.phone
		FROM messages AS m
		JOIN users AS f ON f.username = m.from_username
		JOIN users AS t ON t.username = m.to_username
		WHERE m.id = ?`,
		int64(id),
	).Scan(
		&msg.ID, &msg.Body, &sentAt, &readAt,
		&msg.FromUser.Username, &msg.FromUser.FirstName, &msg.FromUser.LastName, &msg.FromUser.Phone,
		&msg.ToUser.Username, &msg.ToUser.FirstName, &msg.ToUser.LastName, &msg.ToUser.Phone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = errors.Join(domain.ErrMessageNotFound, err)
		}

		return nil, fmt.Errorf("query message: %w", err)
	}

	msg.SentAt = database.FromColumn(sentAt)
	msg.ReadAt = database.FromNullColumn(readAt)

	return &msg, nil
}

// MarkRead implements Repository.MarkRead.
func (r *SQLMessageRepository) MarkRead(ctx context.Context, id domain.MessageID, at time.Time) (*domain.ReadReceipt, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE messages SET read_at = ? WHERE id = ?",
		database.ToColumn(at),
		int64(id),
	)
	if err != nil {
		return nil, fmt.Errorf("update read_at: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return nil, domain.ErrMessageNotFound
	}

	return &domain.ReadReceipt{
		ID:     id,
		ReadAt: database.FromColumn(database.ToColumn(at)),
	}, nil
}
