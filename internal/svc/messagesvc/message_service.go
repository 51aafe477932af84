package messagesvc

import (
	"context"
	"fmt"
	"time"

	"github.com/mkrupp/messagely/internal/domain"
	"github.com/mkrupp/messagely/internal/infra/logging"
	"github.com/mkrupp/messagely/internal/repo/message"
)

// MessageService sends, shows and marks messages on behalf of a requester.
type MessageService struct {
	MessageRepo message.Repository
	Log         logging.Logger
	Now         func() time.Time
}

// NewMessageService creates a MessageService over messageRepo.
func NewMessageService(messageRepo message.Repository) *MessageService {
	return &MessageService{
		MessageRepo: messageRepo,
		Log:         logging.GetLogger("svc.messagesvc.message_service"),
		Now:         time.Now,
	}
}

// Get returns the message with both parties joined in.
// Returns ErrMessageNotFound before checking access, then ErrAccessDenied
// unless the requester sent or received it.
func (s *MessageService) Get(ctx context.Context, requester string, id domain.MessageID) (*domain.MessageDetail, error) {
	msg, err := s.MessageRepo.GetMessage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}

	if err := AuthorizeView(requester, msg); err != nil {
		s.Log.WarnContext(ctx, "message access denied", "message.id", id)

		return nil, err
	}

	return msg, nil
}

// Send stores a message from the requester to req.ToUsername.
// Unknown recipients fail with the store's foreign key error.
func (s *MessageService) Send(ctx context.Context, requester string, req domain.SendMessageRequest) (_ *domain.Message, err error) {
	log := s.Log.With(logging.Group("message", "from", requester, "to", req.ToUsername))

	defer func() {
		if err != nil {
			log.WarnContext(ctx, "send message failed", "error", err)
		} else {
			log.DebugContext(ctx, "message sent")
		}
	}()

	if requester == "" {
		return nil, domain.ErrNoAuthToken
	}

	if err := domain.Validate(req); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	msg := &domain.Message{
		FromUsername: requester,
		ToUsername:   req.ToUsername,
		Body:         req.Body,
		SentAt:       s.Now().UTC(),
	}

	if err := s.MessageRepo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	log = log.With("message.id", msg.ID)

	return msg, nil
}

// MarkRead records that the requester read the message now.
// Only the recipient may do so; repeated calls move read_at forward.
func (s *MessageService) MarkRead(ctx context.Context, requester string, id domain.MessageID) (*domain.ReadReceipt, error) {
	msg, err := s.MessageRepo.GetMessage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}

	if err := AuthorizeMarkRead(requester, msg); err != nil {
		s.Log.WarnContext(ctx, "mark read denied", "message.id", id)

		return nil, err
	}

	receipt, err := s.MessageRepo.MarkRead(ctx, id, s.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}

	return receipt, nil
}
