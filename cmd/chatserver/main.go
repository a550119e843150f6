package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/lovablecline/platform/chat"
	postgreschatrepo "github.com/lovablecline/platform/chat/postgresrepo"
	"github.com/lovablecline/platform/internal/config"
	"github.com/lovablecline/platform/internal/postgres"
	"github.com/lovablecline/platform/internal/service"
)

func main() {
	_ = godotenv.Load()

	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("chat server exited with error")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
}

func run() error {
	c := config.New()
	service.SetupLogging(c.GetEnv())

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

	handler := chat.NewHandler(postgreschatrepo.New(db))
	return service.Run("Chat", c.GetPort(), handler.Router())
}
