package message

import (
	"context"
	"time"

	"github.com/mkrupp/messagely/internal/domain"
)

// Repository defines the interface for message persistence.
type Repository interface {
	// CreateMessage inserts msg and assigns its ID.
	// Unknown sender or recipient usernames fail with the store's foreign key error.
	CreateMessage(ctx context.Context, msg *domain.Message) error

	// GetMessage retrieves a message with both parties joined in.
	// Returns ErrMessageNotFound if there is no such message.
	GetMessage(ctx context.Context, id domain.MessageID) (*domain.MessageDetail, error)

	// MarkRead sets read_at to the given time, overwriting any earlier value.
	// Returns ErrMessageNotFound if there is no such message.
	MarkRead(ctx context.Context, id domain.MessageID, at time.Time) (*domain.ReadReceipt, error)
}
