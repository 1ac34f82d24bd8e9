// Package web serves the dashboard over HTTP: an HTML page, one PNG endpoint per chart, a JSON
// summary and Prometheus metrics.
package web

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
)

// Options configure the server and the default chart presentation.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Width      int
	Height     int
	WeatherAgg analysis.Aggregation
	ShowHints  bool
}

type Server struct {
	app     *fiber.App
	data    *dataset.Dataset
	opts    Options
	log     *zap.Logger
	metrics *Metrics
}

// New builds the fiber app around a loaded dataset. A nil logger falls back to zap.NewNop.
func New(ds *dataset.Dataset, opts Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.WeatherAgg == "" {
		opts.WeatherAgg = analysis.AggMean
	}
	s := &Server{
		data:    ds,
		opts:    opts,
		log:     log,
		metrics: NewMetrics(),
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "bikedash",
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.setupRoutes()
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Run listens on opts.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting server", zap.String("address", s.opts.Addr))
		errCh <- s.app.Listen(s.opts.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		s.log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	s.log.Info("Server exited")
	return nil
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
