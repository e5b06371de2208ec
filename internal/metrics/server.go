package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const (
	defaultAddr            = "127.0.0.1:9706"
	defaultShutdownTimeout = 3 * time.Second
)

// Server serves the /metrics endpoint in the background.
type Server struct {
	server          *http.Server
	notify          chan error
	shutdownTimeout time.Duration
}

type Option func(*Server)

func Addr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.server.Addr = addr
		}
	}
}

func ShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

func NewServer(handler http.Handler, opts ...Option) *Server {
	s := &Server{
		server: &http.Server{
			Addr:              defaultAddr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		notify:          make(chan error, 1),
		shutdownTimeout: defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.start()

	return s
}

func (s *Server) start() {
	go func() {
		err := s.server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			s.notify <- err
		}
		close(s.notify)
	}()
}

// Notify reports the error that stopped the server, if any.
func (s *Server) Notify() <-chan error {
	return s.notify
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
