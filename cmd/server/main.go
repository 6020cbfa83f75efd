package main

import (
	"context"
	"fmt"

	"github.com/lexisync/lexisync/internal/config"
	"github.com/lexisync/lexisync/internal/crypto"
	"github.com/lexisync/lexisync/internal/handler"
	"github.com/lexisync/lexisync/internal/logger"
	"github.com/lexisync/lexisync/internal/server"
	"github.com/lexisync/lexisync/internal/service"
	"github.com/lexisync/lexisync/internal/store"
	"github.com/lexisync/lexisync/internal/workers"
	"github.com/lexisync/lexisync/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.New("lexisync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, db, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	codec, err := crypto.NewCodec(cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing encryption codec")
	}

	pruneWorker := workers.NewPruneWorker(storages.Snapshots, cfg.Workers, log)
	backgroundWorkers := workers.NewWorkers(pruneWorker)
	backgroundWorkers.Run()
	defer pruneWorker.Stop()

	services := service.NewServices(storages, codec, pruneWorker, *cfg, log)

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
