package messagesvc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mkrupp/messagely/internal/domain"
	"github.com/mkrupp/messagely/internal/infra/logging"
	http_ "github.com/mkrupp/messagely/internal/infra/transport/http"
	"github.com/mkrupp/messagely/internal/svc/authsvc/authclient"
	"github.com/mkrupp/messagely/internal/svc/usersvc"
)

// HTTPTransportConfig contains configuration parameters for the HTTP transport layer.
type HTTPTransportConfig struct {
	http_.HTTPTransportConfig
}

// HTTPTransport serves the message and user endpoints.
// Every route requires a bearer token validated through the auth client.
type HTTPTransport struct {
	messageSvc *MessageService
	userSvc    *usersvc.UserService
	handler    http.Handler
	log        logging.Logger
	cfg        HTTPTransportConfig
}

var _ http_.HTTPTransport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a new HTTPTransport with the given services and auth client.
func NewHTTPTransport(
	messageSvc *MessageService,
	userSvc *usersvc.UserService,
	authClient authclient.AuthClient,
	cfg HTTPTransportConfig,
) *HTTPTransport {
	ht := &HTTPTransport{
		messageSvc: messageSvc,
		userSvc:    userSvc,
		log:        logging.GetLogger("svc.messagesvc.http_transport"),
		cfg:        cfg,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /messages/{id}", ht.HandleGetMessage)
	mux.HandleFunc("POST /messages", ht.HandleSendMessage)
	mux.HandleFunc("POST /messages/{id}/read", ht.HandleMarkRead)
	mux.HandleFunc("GET /users", ht.HandleListUsers)
	mux.HandleFunc("GET /users/{username}", ht.HandleGetUser)
	mux.HandleFunc("GET /users/{username}/from", ht.HandleMessagesFrom)
	mux.HandleFunc("GET /users/{username}/to", ht.HandleMessagesTo)

	ht.handler = http_.AuthorizingMiddleware(mux, authClient, ht.log)

	return ht
}

// ServeHTTP implements http.Handler and routes:
// - GET /messages/{id}: Show a message to its sender or recipient
// - POST /messages: Send a message as the requester
// - POST /messages/{id}/read: Mark a message read as its recipient
// - GET /users: List all users
// - GET /users/{username}: Show the requester's profile
// - GET /users/{username}/from: List the requester's sent messages
// - GET /users/{username}/to: List the requester's received messages.
func (ht *HTTPTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ht.handler.ServeHTTP(w, r)
}

// handle runs fn and renders its error, logging failures with the request context.
func (ht *HTTPTransport) handle(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, requester string) (any, error),
) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	var err error

	defer func(ctx context.Context) {
		if err != nil {
			log.WarnContext(ctx, op+" failed", "error", err)
		} else {
			log.DebugContext(ctx, op+" done")
		}
	}(r.Context())

	requester, err := http_.Requester(r)
	if err != nil {
		http_.WriteError(w, err)

		return
	}

	resp, err := fn(r.Context(), requester)
	if err != nil {
		http_.WriteError(w, err)

		return
	}

	err = http_.WriteJSON(w, http.StatusOK, resp)
}

// HandleGetMessage returns {message: detail}.
func (ht *HTTPTransport) HandleGetMessage(w http.ResponseWriter, r *http.Request) {
	ht.handle(w, r, "get message", func(ctx context.Context, requester string) (any, error) {
		id, err := domain.ParseMessageID(r.PathValue("id"))
		if err != nil {
			return nil, err
		}

		msg, err := ht.messageSvc.Get(ctx, requester, id)
		if err != nil {
			return nil, fmt.Errorf("get message: %w", err)
		}

		return domain.MessageEnvelope[*domain.MessageDetail]{Message: msg}, nil
	})
}

// HandleSendMessage expects {to_username, body} and returns {message: created}.
func (ht *HTTPTransport) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	ht.handle(w, r, "send message", func(ctx context.Context, requester string) (any, error) {
		var req domain.SendMessageRequest
		if err := http_.DecodeJSON(w, r, &req); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}

		msg, err := ht.messageSvc.Send(ctx, requester, req)
		if err != nil {
			return nil, fmt.Errorf("send message: %w", err)
		}

		return domain.MessageEnvelope[*domain.Message]{Message: msg}, nil
	})
}

// HandleMarkRead returns {message: {id, read_at}}.
func (ht *HTTPTransport) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ht.handle(w, r, "mark read", func(ctx context.Context, requester string) (any, error) {
		id, err := domain.ParseMessageID(r.PathValue("id"))
		if err != nil {
			return nil, err
		}

		receipt, err := ht.messageSvc.MarkRead(ctx, requester, id)
		if err != nil {
			return nil, fmt.Errorf("mark read: %w", err)
		}

		return domain.MessageEnvelope[*domain.ReadReceipt]{Message: receipt}, nil
	})
}

// HandleListUsers returns {users: [...]}.
func (ht *HTTPTransport) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ht.handle(w, r, "list users", func(ctx context.Context, _ string) (any, error) {
		users, err := ht.userSvc.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}

		return domain.UsersEnvelope{Users: users}, nil
	})
}

// HandleGetUser returns {user: profile}.
func (ht *HTTPTransport) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ht.handle(w, r, "get user", func(ctx context.Context, requester string) (any, error) {
		profile, err := ht.userSvc.Get(ctx, requester, r.PathValue("username"))
		if err != nil {
			return nil, fmt.Errorf("get user: %w", err)
		}

		return domain.UserEnvelope{User: *profile}, nil
	})
}

// HandleMessagesFrom returns {messages: [...]} sent by the user.
func (ht *HTTPTransport) HandleMessagesFrom(w http.ResponseWriter, r *http.Request) {
	ht.handle(w, r, "list messages from", func(ctx context.Context, requester string) (any, error) {
		messages, err := ht.userSvc.MessagesFrom(ctx, requester, r.PathValue("username"))
		if err != nil {
			return nil, fmt.Errorf("messages from: %w", err)
		}

		return domain.MessagesEnvelope[domain.SentMessage]{Messages: messages}, nil
	})
}

// HandleMessagesTo returns {messages: [...]} received by the user.
func (ht *HTTPTransport) HandleMessagesTo(w http.ResponseWriter, r *http.Request) {
	ht.handle(w, r, "list messages to", func(ctx context.Context, requester string) (any, error) {
		messages, err := ht.userSvc.MessagesTo(ctx, requester, r.PathValue("username"))
		if err != nil {
			return nil, fmt.Errorf("messages to: %w", err)
		}

		return domain.MessagesEnvelope[domain.ReceivedMessage]{Messages: messages}, nil
	})
}
