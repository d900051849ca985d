// Package server assembles the HTTP surface: echo, middleware, handlers and
// the health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Eursukkul/airline-ops/internal/handler"
	"github.com/Eursukkul/airline-ops/internal/middleware"
	"github.com/Eursukkul/airline-ops/internal/view"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/metrics"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

const (
	serviceName     = "airline-ops"
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

type Options struct {
	Brand         string
	AdminKey      string
	MaxPassengers int
	Metrics       *metrics.Metrics
	Log           logger.Logger
}

// New builds the echo instance with every route registered.
func New(svc Services, opts Options) (*echo.Echo, error) {
	renderer, err := view.New(opts.Brand)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = middleware.ErrorHandler(opts.Log)

	e.Use(middleware.RequestLogger(opts.Log))
	e.Use(echoMw.RecoverWithConfig(echoMw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			opts.Log.Error("recovered from panic", "error", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(echoMw.ContextTimeoutWithConfig(echoMw.ContextTimeoutConfig{Timeout: requestTimeout}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}

	guards := handler.Guards{
		Admin:   middleware.AdminKey(opts.AdminKey),
		Session: middleware.Session(svc.Sessions),
	}

	handler.NewFlightHandler(svc.Search, svc.Catalog, opts.MaxPassengers).RegisterRoutes(e, guards)
	handler.NewTicketHandler(svc.Tickets, svc.Invoices, opts.MaxPassengers).RegisterRoutes(e, guards)
	handler.NewBaggageHandler(svc.Baggage).RegisterRoutes(e, guards)
	handler.NewSessionHandler(svc.Sessions).RegisterRoutes(e)
	handler.NewCatalogHandler(svc.Catalog).RegisterRoutes(e, guards)

	return e, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, e *echo.Echo, addr string, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
