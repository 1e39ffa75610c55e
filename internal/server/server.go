package server

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/handler"
	"github.com/filevault/filevault/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer constructs the application's transport server from the
// initialized handler bundle. gRPC was dropped along with the teacher's
// sync-client surface; this service is HTTP-only.
func NewServer(handlers *handler.Handlers, cfg config.Server, log *logger.Logger) (Server, error) {
	log.Info().Msg("creating new server...")

	if handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg),
		logger:     log,
	}, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Error().Err(err).Msg("server run failed")
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

func (s *server) run() error {
	if s.httpServer == nil {
		return errors.New("no servers to run")
	}

	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	go func() {
		<-ctx.Done()
		s.httpServer.Shutdown()
		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shutdown gracefully")

	return nil
}
