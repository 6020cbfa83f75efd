package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/lexisync/lexisync/internal/config"
	"github.com/lexisync/lexisync/internal/handler"
	"github.com/lexisync/lexisync/internal/logger"
)

// server runs the configured transport surfaces and coordinates their
// graceful shutdown on process signals.
type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

// NewServer builds the transport surfaces enabled by cfg. At least one
// address must be configured; an all-empty config is a deployment error,
// not a valid quiet mode.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	s := &server{logger: logger}

	if cfg.HTTPAddress != "" {
		s.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		gRPCServer, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		s.gRPCServer = gRPCServer
	}

	if s.httpServer == nil && s.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

// RunServer implements [Server]. Blocks until a termination signal
// arrives and both surfaces have drained.
func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Err(err).Msg("server stopped with error")
	}
}

// Shutdown implements [Server].
func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
}

func (s *server) run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	drained := make(chan struct{})
	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(drained)
	}()

	if s.httpServer != nil {
		s.logger.Info().Msg("launching HTTP server")
		go s.httpServer.RunServer()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("launching gRPC server")
		go s.gRPCServer.RunServer()
	}

	<-drained
	s.logger.Info().Msg("server shut down gracefully")

	return nil
}
