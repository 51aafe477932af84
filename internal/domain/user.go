package domain

import "time"

var (
	// ErrUserAlreadyExists is returned when trying to create a user with an existing username.
	ErrUserAlreadyExists = kindError(ErrConflict, "username already taken")
	// ErrUserNotFound is returned when looking up a non-existent user.
	ErrUserNotFound = kindError(ErrNotFound, "user not found")
	// ErrMessagesNotFound is returned when a user has no sent or received messages.
	// An unknown user yields the same error.
	ErrMessagesNotFound = kindError(ErrNotFound, "no messages found for user")
	// ErrInvalidCredentials is returned when the username/password combination is incorrect.
	ErrInvalidCredentials = kindError(ErrInvalidInput, "invalid username or password")
)

// User is the stored user record, password hash included.
// It never leaves the service layer; use Profile or Summary for output.
type User struct {
	Username     string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Phone        string
	JoinAt       time.Time
	LastLoginAt  time.Time
}

// UserSummary is the public part of a user embedded in listings and messages.
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UserProfile is a UserSummary plus account timestamps.
type UserProfile struct {
	UserSummary

	JoinAt      time.Time `json:"join_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// Summary returns the public part of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}

// Profile returns the user without its password hash.
func (u *User) Profile() UserProfile {
	return UserProfile{
		UserSummary: u.Summary(),
		JoinAt:      u.JoinAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// RegisterRequest holds the fields required to create an account.
type RegisterRequest struct {
	Username  string `json:"username"   validate:"required"`
	Password  string `json:"password"   validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Phone     string `json:"phone"      validate:"required"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
