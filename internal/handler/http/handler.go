package http

import (
	"github.com/lexisync/lexisync/internal/config"
	"github.com/lexisync/lexisync/internal/logger"
	"github.com/lexisync/lexisync/internal/service"
)

type Handler struct {
	services *service.Services
	app      config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		app:      app,
		logger:   logger,
	}
}
