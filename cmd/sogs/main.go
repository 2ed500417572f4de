package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sessionlab/go-sogs/internal/client"
	"github.com/sessionlab/go-sogs/internal/config"
	"github.com/sessionlab/go-sogs/internal/logger"
	"github.com/sessionlab/go-sogs/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.New("go-sogs")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	app, err := client.NewApp(cfg, newConsole(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn().Err(err).Msg("closing storage")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Join.Server != "" {
		server := models.Server{Name: cfg.Join.Server, PublicKey: cfg.Join.PublicKey}
		room, err := app.Client.JoinRoom(ctx, server, cfg.Join.Room)
		if err != nil {
			log.Fatal().Err(err).Msg("join room error")
		}
		fmt.Println(roomStyle.Render(fmt.Sprintf("joined %s/%s (%s)", server.Name, room.Token, room.Name)))
	}

	if err := app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
