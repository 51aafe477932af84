package domain

// MessageEnvelope wraps a single message-shaped response as {"message": ...}.
type MessageEnvelope[T any] struct {
	Message T `json:"message"`
}

// MessagesEnvelope wraps a message listing as {"messages": [...]}.
type MessagesEnvelope[T any] struct {
	Messages []T `json:"messages"`
}

// UsersEnvelope wraps the user listing as {"users": [...]}.
type UsersEnvelope struct {
	Users []UserSummary `json:"users"`
}

// UserEnvelope wraps a user profile as {"user": ...}.
type UserEnvelope struct {
	User UserProfile `json:"user"`
}
