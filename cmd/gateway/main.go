package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/lovablecline/platform/gateway"
	"github.com/lovablecline/platform/internal/config"
	"github.com/lovablecline/platform/internal/service"
	"github.com/lovablecline/platform/token"
)

func main() {
	_ = godotenv.Load()

	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("gateway exited with error")
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

	codec := token.NewCodec(c.GetSigningSecret())
	issuer := token.NewIssuer(codec, c.GetAccessTokenTTL())

	routes := []gateway.Route{
		{Prefix: "/api/auth", Upstream: c.GetAuthServiceURL()},
		{Prefix: "/api/users", Upstream: c.GetUserServiceURL()},
		{Prefix: "/api/projects", Upstream: c.GetProjectServiceURL()},
		{Prefix: "/api/chat", Upstream: c.GetChatServiceURL()},
		{Prefix: "/api/gallery", Upstream: c.GetGalleryServiceURL()},
	}
	server, err := gateway.New(issuer, c.GetAllowListPaths(), routes)
	if err != nil {
		return err
	}

	return service.Run(c.GetAppName(), c.GetPort(), server)
}
