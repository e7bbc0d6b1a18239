// Package server exposes a running simulation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/zeusync/behave/internal/core/observability/log"
)

// Config holds server configuration.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ShutdownTimeout: 5 * time.Second,
		ReadTimeout:     10 * time.Second,
	}
}

// Server serves a handler until its context is cancelled.
type Server struct {
	config  Config
	handler http.Handler
	logger  log.Log
	running int32 // atomic bool
	addr    atomic.Pointer[string]
}

func New(config Config, handler http.Handler, logger log.Log) (*Server, error) {
	if config.Addr == "" {
		return nil, fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if handler == nil {
		return nil, fmt.Errorf("%w: nil handler", ErrInvalidConfig)
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Server{
		config:  config,
		handler: handler,
		logger:  logger.With(log.String("component", "server")),
	}, nil
}

// Serve listens on the configured address and blocks until ctx is done, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}
	defer atomic.StoreInt32(&s.running, 0)

	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}
	addr := ln.Addr().String()
	s.addr.Store(&addr)

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.ReadTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("http server listening", log.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Addr is the bound address once Serve is listening, or "".
func (s *Server) Addr() string {
	if p := s.addr.Load(); p != nil {
		return *p
	}
	return ""
}

func (s *Server) IsRunning() bool { return atomic.LoadInt32(&s.running) == 1 }
