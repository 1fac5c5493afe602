// Package httpserver wraps net/http's server with the directory's defaults
// and a bounded graceful shutdown.
package httpserver

import (
	"context"
	"net/http"
	"time"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// Server is an http.Server that knows how long it is allowed to drain
// in-flight requests on shutdown.
type Server struct {
	*http.Server
	shutdownTimeout time.Duration
}

// Option customizes a Server.
type Option func(*Server)

// WithShutdownTimeout bounds how long Drain waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// New builds a server for the directory API.
func New(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Drain shuts the server down, waiting at most the configured timeout for
// in-flight requests before giving up on them.
func (s *Server) Drain() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
