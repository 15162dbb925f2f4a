// Package service ties the listener and its supporting components together.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultStopTimeout bounds how long Stop waits for components to stop
const DefaultStopTimeout = 30 * time.Second

// Listener is a started-and-stopped datagram source.
type Listener interface {
	Start()
	Stop(ctx context.Context) error
	Done() <-chan struct{}
}

// Telemetry is an optional metrics exporter.
type Telemetry interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type Service struct {
	Logger    *zap.Logger
	Listener  Listener
	Telemetry Telemetry
}

// New creates a service. telemetry may be nil.
func New(logger *zap.Logger, listener Listener, telemetry Telemetry) (*Service, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if listener == nil {
		return nil, fmt.Errorf("listener cannot be nil")
	}

	return &Service{
		Logger:    logger,
		Listener:  listener,
		Telemetry: telemetry,
	}, nil
}

// Start starts telemetry, then the listener.
func (s *Service) Start(ctx context.Context) error {
	if s.Telemetry != nil {
		if err := s.Telemetry.Start(ctx); err != nil {
			return fmt.Errorf("start telemetry: %w", err)
		}
	}

	s.Listener.Start()
	return nil
}

// Done is closed when the listener has stopped reading for good.
func (s *Service) Done() <-chan struct{} {
	return s.Listener.Done()
}

// Stop stops the service. Stop will block for up to 30 seconds.
// If the listener or telemetry do not stop within the timeout, an
// error will be returned and the program can exit.
func (s *Service) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultStopTimeout)
	defer cancel()

	if err := s.Listener.Stop(ctx); err != nil {
		return fmt.Errorf("stop listener: %w", err)
	}

	if s.Telemetry != nil {
		if err := s.Telemetry.Shutdown(ctx); err != nil {
			return fmt.Errorf("stop telemetry: %w", err)
		}
	}

	return nil
}
