package authclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	context_ "github.com/mkrupp/messagely/internal/infra/context"
	"github.com/mkrupp/messagely/internal/infra/logging"
)

const (
	TraceIDHeader       = "X-Request-ID"
	AuthorizationHeader = "Authorization"

	maxUsernameLength = 1024
)

// ErrUnexpectedStatus is returned when the auth service answers neither 200 nor 4xx.
var ErrUnexpectedStatus = errors.New("unexpected auth service status")

// HTTPClientConfig holds configuration for the HTTP auth client.
type HTTPClientConfig struct {
	// AuthURL is the endpoint for token validation requests
	AuthURL string `env:"AUTH_URL" default:"http://localhost:8080/auth/validate"`

	// Timeout bounds a single validation round trip
	Timeout time.Duration `env:"TIMEOUT" default:"5s"`
}

// HTTPClient implements AuthClient by asking the auth service to validate tokens.
type HTTPClient struct {
	httpClient *http.Client
	log        logging.Logger
	cfg        HTTPClientConfig
}

var _ AuthClient = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTPClient with the given configuration.
// If httpClient is nil, a client with the configured timeout is used.
func NewHTTPClient(
	cfg HTTPClientConfig,
	httpClient *http.Client,
) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &HTTPClient{
		httpClient: httpClient,
		log:        logging.GetLogger("svc.authsvc.authclient.http_client"),
		cfg:        cfg,
	}
}

// Validate implements AuthClient.Validate. The token is forwarded in the
// Authorization header together with the request trace ID.
// A 4xx answer means the token is invalid; other non-200 answers are errors.
func (c *HTTPClient) Validate(ctx context.Context, token string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set(AuthorizationHeader, token)

	if traceID, ok := context_.TraceIDFromContext(ctx); ok {
		req.Header.Set(TraceIDHeader, traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		c.log.DebugContext(ctx, "token rejected", "status", resp.StatusCode)

		return "", false, nil
	default:
		return "", false, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	username, err := io.ReadAll(io.LimitReader(resp.Body, maxUsernameLength))
	if err != nil {
		return "", false, fmt.Errorf("read body: %w", err)
	}

	return strings.TrimSpace(string(username)), true, nil
}
