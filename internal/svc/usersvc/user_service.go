package usersvc

import (
	"context"
	"fmt"

	"github.com/mkrupp/messagely/internal/domain"
	"github.com/mkrupp/messagely/internal/infra/logging"
	"github.com/mkrupp/messagely/internal/repo/user"
)

// UserService exposes user profiles and mailboxes to authenticated requesters.
type UserService struct {
	UserRepo user.Repository
	Log      logging.Logger
}

// NewUserService creates a UserService over userRepo.
func NewUserService(userRepo user.Repository) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Log:      logging.GetLogger("svc.usersvc.user_service"),
	}
}

// All returns the summaries of all users ordered by username.
func (s *UserService) All(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.UserRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// Get returns the profile of username. Only the user themself may read it.
func (s *UserService) Get(ctx context.Context, requester, username string) (*domain.UserProfile, error) {
	if err := AuthorizeSelf(requester, username); err != nil {
		s.Log.WarnContext(ctx, "profile access denied", "username", username)

		return nil, err
	}

	u, err := s.UserRepo.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	profile := u.Profile()

	return &profile, nil
}

// MessagesFrom returns the messages sent by username.
// Only the user themself may list them.
func (s *UserService) MessagesFrom(ctx context.Context, requester, username string) ([]domain.SentMessage, error) {
	if err := AuthorizeSelf(requester, username); err != nil {
		s.Log.WarnContext(ctx, "outbox access denied", "username", username)

		return nil, err
	}

	messages, err := s.UserRepo.ListMessagesFrom(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list messages from: %w", err)
	}

	return messages, nil
}

// MessagesTo returns the messages received by username.
// Only the user themself may list them.
func (s *UserService) MessagesTo(ctx context.Context, requester, username string) ([]domain.ReceivedMessage, error) {
	if err := AuthorizeSelf(requester, username); err != nil {
		s.Log.WarnContext(ctx, "inbox access denied", "username", username)

		return nil, err
	}

	messages, err := s.UserRepo.ListMessagesTo(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list messages to: %w", err)
	}

	return messages, nil
}
