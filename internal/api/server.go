package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"
)

type Options struct {
	Logger      *log.Logger
	CORSOrigins []string
	// RateLimitRPS of 0 disables rate limiting.
	RateLimitRPS float64
	// Metrics, when set, is served on /metrics.
	Metrics http.Handler
}

// NewServer returns an echo instance with the dashboard's codec, validator,
// error handling and middleware installed, and h's routes registered.
func NewServer(h *Handler, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler
	if opts.Logger != nil {
		e.Logger = opts.Logger
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infoj(log.JSON{
				"id":      v.RequestID,
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			return nil
		},
	}))
	if len(opts.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodHead},
		}))
	}
	if opts.RateLimitRPS > 0 {
		store := middleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimitRPS))
		e.Use(middleware.RateLimiter(store))
	}

	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics))
	}
	h.RegisterRoutes(e)
	return e
}
