package user

import (
	"context"
	"time"

	"github.com/mkrupp/messagely/internal/domain"
)

// Repository defines the interface for user data persistence.
type Repository interface {
	// CreateUser inserts a new user.
	// Returns ErrUserAlreadyExists if the username is already taken.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUser retrieves a user, password hash included.
	// Returns ErrUserNotFound if there is no such user.
	GetUser(ctx context.Context, username string) (*domain.User, error)

	// UpdateLoginTimestamp sets the user's last login time.
	// Unknown usernames are not an error.
	UpdateLoginTimestamp(ctx context.Context, username string, at time.Time) error

	// ListUsers returns the summaries of all users ordered by username.
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)

	// ListMessagesFrom returns the messages sent by username with recipients joined in.
	// Returns ErrMessagesNotFound when there are none, whether or not the user exists.
	ListMessagesFrom(ctx context.Context, username string) ([]domain.SentMessage, error)

	// ListMessagesTo returns the messages received by username with senders joined in.
	// Returns ErrMessagesNotFound when there are none, whether or not the user exists.
	ListMessagesTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error)
}
