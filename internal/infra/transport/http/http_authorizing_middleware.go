package http

import (
	"net/http"

	"github.com/mkrupp/messagely/internal/domain"
	context_ "github.com/mkrupp/messagely/internal/infra/context"
	"github.com/mkrupp/messagely/internal/infra/logging"
	"github.com/mkrupp/messagely/internal/svc/authsvc/authclient"
)

const AuthorizationHeader = "Authorization"

// AuthorizingMiddleware resolves the requester from the Authorization header through
// authClient and stores the username in the request context.
// Requests without a valid token are rejected with 401.
func AuthorizingMiddleware(
	next http.Handler,
	authClient authclient.AuthClient,
	log logging.Logger,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(AuthorizationHeader)
		if token == "" {
			log.WarnContext(r.Context(), "no token provided")
			WriteError(w, domain.ErrNoAuthToken)

			return
		}

		username, ok, err := authClient.Validate(r.Context(), token)
		if err != nil {
			log.ErrorContext(r.Context(), "validate token failed", "error", err)
			WriteError(w, err)

			return
		} else if !ok {
			log.WarnContext(r.Context(), "invalid token")
			WriteError(w, domain.ErrInvalidAuthToken)

			return
		}

		next.ServeHTTP(w, r.WithContext(context_.WithUsername(r.Context(), username)))
	})
}

// Requester returns the authenticated username stored by AuthorizingMiddleware.
// It fails with ErrNoAuthToken when the request was not authorized.
func Requester(r *http.Request) (string, error) {
	username, ok := context_.UsernameFromContext(r.Context())
	if !ok {
		return "", domain.ErrNoAuthToken
	}

	return username, nil
}
