package authsvc

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mkrupp/messagely/internal/domain"
	"github.com/mkrupp/messagely/internal/infra/logging"
	http_ "github.com/mkrupp/messagely/internal/infra/transport/http"
)

// HTTPTransportConfig contains configuration parameters for the HTTP transport layer.
type HTTPTransportConfig struct {
	http_.HTTPTransportConfig
}

// HTTPTransport handles HTTP requests for the authentication service.
// It provides endpoints for user registration, login, and token validation.
type HTTPTransport struct {
	authSvc *AuthService
	mux     *http.ServeMux
	log     logging.Logger
	cfg     HTTPTransportConfig
}

// NewHTTPTransport creates a new HTTPTransport instance with the given configuration.
// It requires an AuthService for handling authentication operations.
func NewHTTPTransport(
	authSvc *AuthService,
	cfg HTTPTransportConfig,
) *HTTPTransport {
	ht := &HTTPTransport{
		authSvc: authSvc,
		mux:     http.NewServeMux(),
		log:     logging.GetLogger("svc.authsvc.http_transport"),
		cfg:     cfg,
	}

	ht.mux.HandleFunc("POST /auth/register", ht.HandleRegister)
	ht.mux.HandleFunc("POST /auth/login", ht.HandleLogin)
	ht.mux.HandleFunc("POST /auth/validate", ht.HandleValidate)

	return ht
}

// ServeHTTP implements http.Handler and routes the auth service endpoints:
// - POST /auth/register: Register a new user and get an auth token
// - POST /auth/login: Login and get an auth token
// - POST /auth/validate: Validate an auth token.
func (ht *HTTPTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ht.mux.ServeHTTP(w, r)
}

var _ http_.HTTPTransport = (*HTTPTransport)(nil)

// HandleRegister processes user registration requests.
// Expects a JSON body {username, password, first_name, last_name, phone}.
// Returns an auth token for the new user.
func (ht *HTTPTransport) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := ht.handleRegister(w, r); err != nil {
		http_.WriteError(w, err)
	}
}

func (ht *HTTPTransport) handleRegister(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.WarnContext(ctx, "user register failed", "error", err)
		} else {
			log.DebugContext(ctx, "user registered")
		}
	}(r.Context())

	var req domain.RegisterRequest
	if err := http_.DecodeJSON(w, r, &req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	log = log.With(logging.Group("user", "username", req.Username))

	profile, err := ht.authSvc.Register(r.Context(), req)
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}

	token, err := ht.authSvc.IssueToken(r.Context(), profile.Username)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	return http_.WriteJSON(w, http.StatusOK, domain.AuthTokenResponse{Token: token})
}

// HandleLogin processes user login requests.
// Expects a JSON body {username, password}.
// Returns an auth token on successful login.
func (ht *HTTPTransport) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := ht.handleLogin(w, r); err != nil {
		http_.WriteError(w, err)
	}
}

func (ht *HTTPTransport) handleLogin(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.WarnContext(ctx, "user login failed", "error", err)
		} else {
			log.DebugContext(ctx, "user logged in")
		}
	}(r.Context())

	var req domain.LoginRequest
	if err := http_.DecodeJSON(w, r, &req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	log = log.With(logging.Group("user", "username", req.Username))

	token, err := ht.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		return fmt.Errorf("login user: %w", err)
	}

	return http_.WriteJSON(w, http.StatusOK, domain.AuthTokenResponse{Token: token})
}

// HandleValidate processes token validation requests.
// Expects the token in the Authorization header with Bearer scheme.
// Returns the username associated with the token if valid.
func (ht *HTTPTransport) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if err := ht.handleValidate(w, r); err != nil {
		http_.WriteError(w, err)
	}
}

func (ht *HTTPTransport) handleValidate(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.WarnContext(ctx, "user token validation failed", "error", err)
		} else {
			log.DebugContext(ctx, "user token validated")
		}
	}(r.Context())

	authHeader := r.Header.Get(http_.AuthorizationHeader)
	if authHeader == "" {
		return domain.ErrNoAuthToken
	}

	tokenString, _ := strings.CutPrefix(authHeader, "Bearer")
	tokenString = strings.TrimSpace(tokenString)

	token, err := ht.authSvc.ValidateToken(r.Context(), tokenString)
	if err != nil {
		return fmt.Errorf("validate token: %w", err)
	}

	log = log.With(logging.Group("token",
		"username", token.Username,
		"exp", token.ExpiresAt.UTC().Format(time.RFC3339),
	))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(token.Username)); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}
