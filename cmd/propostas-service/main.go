package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aircomp/propostas-service/internal/auth"
	"github.com/aircomp/propostas-service/internal/config"
	"github.com/aircomp/propostas-service/internal/db"
	httphandler "github.com/aircomp/propostas-service/internal/http"
	"github.com/aircomp/propostas-service/internal/http/middleware"
	"github.com/aircomp/propostas-service/internal/logger"
	"github.com/aircomp/propostas-service/internal/repository"
	"github.com/aircomp/propostas-service/internal/service"
	"github.com/aircomp/propostas-service/internal/template"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	documentRepo := repository.NewDocumentRepository(database)
	clientRepo := repository.NewClientRepository(database)

	templateStore := template.NewStore(database)
	if err := templateStore.EnsureBuiltins(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed builtin templates")
	}

	proposalService := service.NewProposalService(documentRepo, templateStore, cfg, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(proposalService, templateStore, clientRepo, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting propostas service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
