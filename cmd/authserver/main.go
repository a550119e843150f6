package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/lovablecline/platform/auth"
	"github.com/lovablecline/platform/authserver"
	"github.com/lovablecline/platform/internal/config"
	"github.com/lovablecline/platform/internal/postgres"
	"github.com/lovablecline/platform/internal/service"
	"github.com/lovablecline/platform/token"
	"github.com/lovablecline/platform/token/refresh"
	postgresrefreshrepo "github.com/lovablecline/platform/token/refresh/postgresrepo"
	postgresuserrepo "github.com/lovablecline/platform/users/postgresrepo"
)

func main() {
	_ = godotenv.Load()

	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("auth server exited with error")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
}

func run() error {
	c := config.New()
	service.SetupLogging(c.GetEnv())
	if err := config.Validate(c); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Open(ctx, c.GetDatabaseDSN())
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.RunMigrations(ctx, db); err != nil {
		return err
	}

	codec := token.NewCodec(c.GetSigningSecret())
	issuer := token.NewIssuer(codec, c.GetAccessTokenTTL())
	store := refresh.NewStore(postgresrefreshrepo.New(db), c.GetRefreshTokenTTL())
	go store.RunSweeper(ctx, c.GetSweepInterval())

	sessions, err := auth.NewSessionService(postgresuserrepo.New(db), issuer, store)
	if err != nil {
		return err
	}

	server := authserver.New(sessions, issuer, codec)
	return service.Run("Auth", c.GetPort(), server.Router())
}
