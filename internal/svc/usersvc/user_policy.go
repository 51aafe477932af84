package usersvc

import "github.com/mkrupp/messagely/internal/domain"

// AuthorizeSelf allows a requester to read only their own profile and mailboxes.
func AuthorizeSelf(requester, username string) error {
	if requester == "" || requester != username {
		return domain.ErrAccessDenied
	}

	return nil
}
