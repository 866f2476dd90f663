package main

import (
	"context"
	"fmt"

	"github.com/avoronin/go-todo-app/internal/config"
	handler "github.com/avoronin/go-todo-app/internal/handler/http"
	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/server"
	"github.com/avoronin/go-todo-app/internal/service"
	"github.com/avoronin/go-todo-app/internal/store"
	"github.com/avoronin/go-todo-app/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("todo-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	repositories := store.NewRepositories(db, log)
	services := service.NewServices(repositories, cfg.App, log)
	handlers := handler.NewHandler(services, log)

	srv, err := server.NewServer(handlers.InitTodoRouter(), cfg.Server, log)
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
