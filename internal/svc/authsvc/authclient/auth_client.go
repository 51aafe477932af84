package authclient

//go:generate mockgen -source=auth_client.go -destination=mock_auth_client.go -package=authclient

import "context"

// AuthClient resolves bearer tokens to usernames.
type AuthClient interface {
	// Validate checks if the given token is valid.
	// Returns the username associated with the token, whether the token is valid,
	// and any error encountered during validation.
	Validate(ctx context.Context, token string) (string, bool, error)
}
