// Package service provides functionality common to long running commands, like handy serve.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/birdie-ai/handy/slog"
	"github.com/sourcegraph/conc/pool"
)

type (
	// Shutdowner represents a service that can shutdown, like an [http.Server].
	Shutdowner interface {
		Shutdown(context.Context) error
	}

	// ShutdownFunc adapts a function to a [Shutdowner].
	ShutdownFunc func(context.Context) error

	// ShutdownHandler handles the shutdown of multiple services.
	// It waits for a context to be cancelled to then call each service's Shutdown method.
	ShutdownHandler struct {
		waitPeriod time.Duration
		services   []namedService
	}

	namedService struct {
		name    string
		service Shutdowner
	}
)

// Shutdown calls f(ctx).
func (f ShutdownFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

// NewShutdownHandler creates a new [ShutdownHandler] with the given [gracefulShutdownPeriod].
func NewShutdownHandler(gracefulShutdownPeriod time.Duration) *ShutdownHandler {
	return &ShutdownHandler{waitPeriod: gracefulShutdownPeriod}
}

// Add will add the given service to the handler, name is used on logs and errors.
// Must be called before [ShutdownHandler.Wait] is called.
func (s *ShutdownHandler) Add(name string, service Shutdowner) {
	s.services = append(s.services, namedService{name: name, service: service})
}

// Wait will wait for the given [ctx] to be cancelled.
// When [ctx] is cancelled it will shut down all services
// concurrently and wait for all of them to finish before returning.
// It will wait for each service to shut down for the wait period provided on
// NewShutdownHandler. Errors of all services are joined.
func (s *ShutdownHandler) Wait(ctx context.Context) error {
	<-ctx.Done()

	log := slog.FromCtx(ctx)
	log.Info("shutting down services", "services", len(s.services), "wait_period", s.waitPeriod)

	p := pool.NewWithResults[error]()

	for _, v := range s.services {
		p.Go(func() error {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.waitPeriod)
			defer cancel()

			if err := v.service.Shutdown(ctx); err != nil {
				log.Error("shutting down service", "service", v.name, "error", err)
				return fmt.Errorf("service %q: %w", v.name, err)
			}
			log.Debug("service shut down", "service", v.name)
			return nil
		})
	}

	return errors.Join(p.Wait()...)
}
