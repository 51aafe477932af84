package domain

import (
	"strconv"
	"time"
)

var (
	// ErrMessageNotFound is returned when no message has the requested ID.
	ErrMessageNotFound = kindError(ErrNotFound, "message not found")
	// ErrInvalidMessageID is returned when a message ID cannot be parsed.
	ErrInvalidMessageID = kindError(ErrInvalidInput, "invalid message id")
)

// MessageID identifies a message. IDs are assigned by the store.
type MessageID int64

// ParseMessageID parses a decimal message ID. IDs are positive.
func ParseMessageID(s string) (MessageID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidMessageID
	}

	return MessageID(id), nil
}

// Message is a stored message as returned on creation.
type Message struct {
	ID           MessageID  `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
}

// MessageDetail is a message with both parties' summaries joined in.
type MessageDetail struct {
	ID       MessageID   `json:"id"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
	FromUser UserSummary `json:"from_user"`
	ToUser   UserSummary `json:"to_user"`
}

// SentMessage is an entry of a user's outbox, embedding the recipient.
type SentMessage struct {
	ID     MessageID   `json:"id"`
	ToUser UserSummary `json:"to_user"`
	Body   string      `json:"body"`
	SentAt time.Time   `json:"sent_at"`
	ReadAt *time.Time  `json:"read_at"`
}

// ReceivedMessage is an entry of a user's inbox, embedding the sender.
type ReceivedMessage struct {
	ID       MessageID   `json:"id"`
	FromUser UserSummary `json:"from_user"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
}

// ReadReceipt reports when a message was marked read.
type ReadReceipt struct {
	ID     MessageID `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

// SendMessageRequest is the client input for sending a message.
// The sender is always the authenticated requester.
type SendMessageRequest struct {
	ToUsername string `json:"to_username" validate:"required"`
	Body       string `json:"body"        validate:"required"`
}
