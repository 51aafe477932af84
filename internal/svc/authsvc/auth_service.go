package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkrupp/messagely/internal/domain"
	"github.com/mkrupp/messagely/internal/infra/logging"
	"github.com/mkrupp/messagely/internal/repo/user"
)

// AuthConfig contains configuration parameters for the authentication service.
type AuthConfig struct {
	// SigningKeyFile is the path to the RSA private key file
	SigningKeyFile string `env:"SIGNING_KEY_FILE" default:"var/storage/authsvc.key"`

	// TokenDuration is the validity duration of auth tokens
	TokenDuration time.Duration `env:"TOKEN_DURATION" default:"24h"`

	// BcryptWorkFactor is the bcrypt cost used for password hashes
	BcryptWorkFactor int `env:"BCRYPT_WORK_FACTOR" default:"12"`
}

// AuthService registers and authenticates users and issues their tokens.
type AuthService struct {
	UserRepo user.Repository
	Hasher   PasswordHasher
	Tokens   *TokenIssuer
	Log      logging.Logger
	Now      func() time.Time
}

// NewAuthService creates a new AuthService with the given user repository and configuration.
// Returns an error if the signing key cannot be loaded.
func NewAuthService(userRepo user.Repository, cfg AuthConfig) (*AuthService, error) {
	signingKey, err := GetPrivateKey(cfg.SigningKeyFile)
	if err != nil {
		return nil, fmt.Errorf("get private key: %w", err)
	}

	return &AuthService{
		UserRepo: userRepo,
		Hasher:   BcryptHasher{Cost: cfg.BcryptWorkFactor},
		Tokens:   NewTokenIssuer(signingKey, cfg.TokenDuration),
		Log:      logging.GetLogger("svc.authsvc.auth_service"),
		Now:      time.Now,
	}, nil
}

func (s *AuthService) now() time.Time {
	return s.Now().UTC()
}

// Register creates a new user account. All fields are required.
// The password is hashed before storage.
// Returns ErrUserAlreadyExists if the username is taken.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (_ *domain.UserProfile, err error) {
	log := s.Log.With(logging.Group("user", "username", req.Username))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "register user failed", "error", err)
		} else {
			log.DebugContext(ctx, "user registered")
		}
	}()

	if err := domain.Validate(req); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	passwordHash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := &domain.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		JoinAt:       now,
		LastLoginAt:  now,
	}

	if err := s.UserRepo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	profile := u.Profile()

	return &profile, nil
}

// Authenticate reports whether password is valid for username.
// Empty credentials and unknown users yield false without an error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	u, err := s.UserRepo.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("get user: %w", err)
	}

	return s.Hasher.Verify(password, u.PasswordHash), nil
}

// UpdateLoginTimestamp records a login for username at the current time.
func (s *AuthService) UpdateLoginTimestamp(ctx context.Context, username string) error {
	if err := s.UserRepo.UpdateLoginTimestamp(ctx, username, s.now()); err != nil {
		return fmt.Errorf("update login timestamp: %w", err)
	}

	return nil
}

// Login authenticates the user, records the login and returns a signed token.
// Returns ErrInvalidCredentials if authentication fails.
func (s *AuthService) Login(ctx context.Context, username, password string) (_ string, err error) {
	log := s.Log.With(logging.Group("user", "username", username))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "login failed", "error", err)
		} else {
			log.DebugContext(ctx, "login successful")
		}
	}()

	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	} else if !ok {
		return "", domain.ErrInvalidCredentials
	}

	if err := s.UpdateLoginTimestamp(ctx, username); err != nil {
		return "", err
	}

	return s.IssueToken(ctx, username)
}

// IssueToken returns a signed token for username.
func (s *AuthService) IssueToken(ctx context.Context, username string) (string, error) {
	token, claims, err := s.Tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.Log.DebugContext(ctx, "token issued", logging.Group("token",
		"username", claims.Username,
		"exp", claims.ExpiresAt.UTC().Format(time.RFC3339),
		"iat", claims.IssuedAt.UTC().Format(time.RFC3339),
	))

	return token, nil
}

// ValidateToken verifies a token's signature and expiration.
// Returns the decoded token if valid, or an error wrapping ErrInvalidAuthToken.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (domain.AuthToken, error) {
	token, err := s.Tokens.Validate(tokenString)
	if err != nil {
		s.Log.DebugContext(ctx, "validate token failed", "error", err)

		return domain.AuthToken{}, fmt.Errorf("validate token: %w", err)
	}

	return token, nil
}
