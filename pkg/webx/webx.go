// Package webx factors out the fiber application shell shared by every IAG
// service: middleware stack, JSON error handling, and graceful shutdown.
package webx

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abraxas-iag/gateway/pkg/errx"
	"github.com/abraxas-iag/gateway/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// AppConfig configures the shared fiber bootstrap.
type AppConfig struct {
	Name        string
	CORSOrigins string

	// Debug controls whether error responses echo upstream/internal detail
	// back to the caller. Every service's own *_DEBUG_ENABLED env var feeds
	// this; leave false in production so raw upstream bodies never leak.
	Debug bool
}

// NewApp builds a fiber.App with the recover/requestid/cors/logger middleware
// stack and the shared error handler, wired identically for every service
// in this module (gateway, authorizer, authserver, resourceserver).
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
		ErrorHandler:          newErrorHandler(cfg.Debug),
		IdleTimeout:           120 * time.Second,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: func() string { return uuid.NewString() },
	}))

	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${reqHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	return app
}

// newErrorHandler binds debug into the returned handler since fiber.Config's
// ErrorHandler has a fixed signature with no room for extra arguments. detail
// (the raw upstream/internal error body) is only ever populated when debug
// is true; otherwise callers get the stable error code and nothing else.
func newErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logx.WithFields(logx.Fields{
			"path":       c.Path(),
			"method":     c.Method(),
			"request_id": c.Get("X-Request-ID"),
		}).WithError(err).Error("request error")

		if e, ok := err.(*errx.Error); ok {
			resp := fiber.Map{
				"error": e.Code,
				"code":  e.Code,
			}
			if debug {
				if len(e.Details) > 0 {
					resp["detail"] = e.Details
				} else if e.Message != "" {
					resp["detail"] = e.Message
				}
			}
			return c.Status(e.HTTPStatus).JSON(resp)
		}

		if e, ok := err.(*fiber.Error); ok {
			resp := fiber.Map{
				"error": "invalid_request",
				"code":  e.Code,
			}
			if debug {
				resp["detail"] = e.Message
			}
			return c.Status(e.Code).JSON(resp)
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error",
		})
	}
}

// Serve starts app on addr in a goroutine and blocks until SIGINT/SIGTERM,
// then shuts it down gracefully.
func Serve(app *fiber.App, addr string) {
	go func() {
		logx.Infof("listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			logx.Fatalf("server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan
	logx.Infof("received signal: %v, shutting down", sig)

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("forced shutdown: %v", err)
	}
}
