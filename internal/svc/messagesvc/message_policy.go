package messagesvc

import "github.com/mkrupp/messagely/internal/domain"

// AuthorizeView allows the sender and the recipient to see a message.
func AuthorizeView(requester string, msg *domain.MessageDetail) error {
	if requester == "" {
		return domain.ErrAccessDenied
	}

	if requester != msg.FromUser.Username && requester != msg.ToUser.Username {
		return domain.ErrAccessDenied
	}

	return nil
}

// AuthorizeMarkRead allows only the recipient to mark a message as read.
func AuthorizeMarkRead(requester string, msg *domain.MessageDetail) error {
	if requester == "" || requester != msg.ToUser.Username {
		return domain.ErrAccessDenied
	}

	return nil
}
