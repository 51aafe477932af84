package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrupp/messagely/internal/domain"
)

func TestParseMessageID(t *testing.T) {
	t.Parallel()

	id, err := domain.ParseMessageID("42")
	require.NoError(t, err)
	assert.Equal(t, domain.MessageID(42), id)

	for _, s := range []string{"", "0", "-1", "abc", "1.5", "99999999999999999999"} {
		_, err := domain.ParseMessageID(s)
		require.ErrorIs(t, err, domain.ErrInvalidMessageID, s)
		require.ErrorIs(t, err, domain.ErrInvalidInput, s)
	}
}
