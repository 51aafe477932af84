package authclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	context_ "github.com/mkrupp/messagely/internal/infra/context"
	"github.com/mkrupp/messagely/internal/svc/authsvc/authclient"
)

func TestHTTPClient_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		body         string
		wantUsername string
		wantOK       bool
		wantErr      bool
	}{
		{name: "valid token", status: http.StatusOK, body: "alice", wantUsername: "alice", wantOK: true},
		{name: "rejected token", status: http.StatusUnauthorized, body: `{"error":{}}`},
		{name: "bad request", status: http.StatusBadRequest},
		{name: "auth service failure", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			headers := make(chan http.Header, 1)

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				headers <- r.Header.Clone()

				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			t.Cleanup(srv.Close)

			client := authclient.NewHTTPClient(authclient.HTTPClientConfig{AuthURL: srv.URL, Timeout: time.Second}, nil)

			ctx := context_.WithTraceID(context.Background(), "trace-1")
			username, ok, err := client.Validate(ctx, "Bearer tok")

			if tt.wantErr {
				require.ErrorIs(t, err, authclient.ErrUnexpectedStatus)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantUsername, username)
			got := <-headers
			assert.Equal(t, "Bearer tok", got.Get(authclient.AuthorizationHeader))
			assert.Equal(t, "trace-1", got.Get(authclient.TraceIDHeader))
		})
	}
}

func TestHTTPClient_ValidateUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := authclient.NewHTTPClient(authclient.HTTPClientConfig{AuthURL: url, Timeout: time.Second}, nil)

	_, ok, err := client.Validate(context.Background(), "Bearer tok")
	require.Error(t, err)
	assert.False(t, ok)
}
