package web

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func (s *Server) setupRoutes() {
	app := s.app

	// Middleware
	app.Use(requestid.New())
	app.Use(s.requestLogger())
	app.Use(recover.New())

	app.Get("/", s.getIndex)
	app.Get("/charts/:file", s.getChart)
	app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	api := app.Group("/api/v1")
	api.Get("/health", s.getHealth)
	api.Get("/summary", s.getSummary)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
			"path":  c.Path(),
		})
	})
}

// requestLogger logs one zap line per request and feeds the request metrics. Handler errors
// are resolved here so the logged status is the one the client sees. Strings taken from the
// context are cloned because fiber reuses its buffers after the handler returns.
func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		method := strings.Clone(c.Method())
		route := c.Route().Path
		if status == fiber.StatusNotFound {
			route = "not_found"
		}
		s.metrics.ObserveRequest(route, method, strconv.Itoa(status), elapsed)

		rid, _ := c.Locals("requestid").(string)
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", strings.Clone(c.Path())),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("request_id", strings.Clone(rid)),
		}
		if status >= fiber.StatusInternalServerError {
			s.log.Warn("request", fields...)
		} else {
			s.log.Info("request", fields...)
		}
		return nil
	}
}
