package context_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	context_ "github.com/mkrupp/messagely/internal/infra/context"
)

func TestUsernameFromContext(t *testing.T) {
	t.Parallel()

	_, ok := context_.UsernameFromContext(context.Background())
	assert.False(t, ok)

	_, ok = context_.UsernameFromContext(context_.WithUsername(context.Background(), ""))
	assert.False(t, ok)

	username, ok := context_.UsernameFromContext(context_.WithUsername(context.Background(), "bob"))
	assert.True(t, ok)
	assert.Equal(t, "bob", username)
}

func TestTraceIDFromContext(t *testing.T) {
	t.Parallel()

	_, ok := context_.TraceIDFromContext(context.Background())
	assert.False(t, ok)

	traceID, ok := context_.TraceIDFromContext(context_.WithTraceID(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", traceID)
}
