package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mkrupp/messagely/internal/infra/config"
	"github.com/mkrupp/messagely/internal/infra/database"
	"github.com/mkrupp/messagely/internal/infra/logging"
	"github.com/mkrupp/messagely/internal/infra/transport/http"
	"github.com/mkrupp/messagely/internal/repo/message"
	"github.com/mkrupp/messagely/internal/repo/user"
	"github.com/mkrupp/messagely/internal/svc/authsvc/authclient"
	"github.com/mkrupp/messagely/internal/svc/messagesvc"
	"github.com/mkrupp/messagely/internal/svc/usersvc"
)

const (
	appName = "messagely"
	svcName = "messagesvc"
)

type Config struct {
	config.EnvConfig

	Log        logging.LoggerConfig           `envPrefix:"LOG_"`
	HTTP       messagesvc.HTTPTransportConfig `envPrefix:"HTTP_"`
	DB         database.Config                `envPrefix:"DB_"`
	AuthClient authclient.HTTPClientConfig    `envPrefix:"AUTHCLIENT_"`
}

func main() {
	var (
		cfg Config

		configPrefix = strings.ToUpper(strings.Join([]string{appName, svcName}, "_"))
		loggerName   = strings.ToLower(strings.Join([]string{appName, svcName}, "."))
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(".env"); err != nil {
		panic(err)
	}

	if err := config.Parse(ctx, &cfg, configPrefix); err != nil {
		panic(err)
	}

	logging.Configure(ctx, cfg.Log, loggerName)

	if err := run(ctx, cfg); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) (err error) {
	log := logging.GetLogger("cmd.messagesvc")

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "error", "err", err)
		} else {
			log.InfoContext(ctx, "shutdown")
		}
	}()

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	httpTransport := messagesvc.NewHTTPTransport(
		messagesvc.NewMessageService(message.NewSQLMessageRepository(db)),
		usersvc.NewUserService(user.NewSQLUserRepository(db)),
		authclient.NewHTTPClient(cfg.AuthClient, nil),
		cfg.HTTP,
	)

	if err := http.ListenAndServe(ctx, httpTransport, cfg.HTTP.HTTPTransportConfig); err != nil {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}
