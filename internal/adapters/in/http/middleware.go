package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/ports"
	"travelagency/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	AuthHeader        = "x-auth-token"
	IdempotencyHeader = "Idempotency-Key"

	principalKey = "principal"
)

// Authenticate resolves the x-auth-token header into a principal stored on the
// echo context.
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(AuthHeader)
			if token == "" {
				return errs.NewUnauthenticatedError("Access denied. No token provided.")
			}
			principal, err := verifier.Verify(token)
			if err != nil {
				return err
			}
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (access.Principal, error) {
	principal, ok := c.Get(principalKey).(access.Principal)
	if !ok {
		return access.Principal{}, errs.NewUnauthenticatedError("Access denied. No token provided.")
	}
	return principal, nil
}

// IdempotencyStore remembers request keys that are being or have been
// processed.
type IdempotencyStore interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Idempotency rejects a repeated Idempotency-Key with 409. Keys are scoped by
// method, route and caller, so one key reused on another route or by another
// user is a new request. The key is released when the handler fails so the
// client may retry. Requests without the header pass through, and so do
// requests while the store is unavailable.
func Idempotency(store IdempotencyStore, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(IdempotencyHeader)
			if key == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			key = idempotencyScope(c, key)
			acquired, err := store.Acquire(ctx, key)
			if err != nil {
				logger.WarnContext(ctx, "idempotency store unavailable", "error", err)
				return next(c)
			}
			if !acquired {
				return echo.NewHTTPError(http.StatusConflict, "request already processed")
			}

			if err := next(c); err != nil {
				if releaseErr := store.Release(ctx, key); releaseErr != nil {
					logger.WarnContext(ctx, "failed to release idempotency key", "error", releaseErr)
				}
				return err
			}
			return nil
		}
	}
}

// idempotencyScope prefixes key with the method, the route template and the
// caller id, or "anonymous" before authentication.
func idempotencyScope(c echo.Context, key string) string {
	caller := "anonymous"
	if principal, err := principalFrom(c); err == nil {
		caller = principal.UserID().String()
	}
	return c.Request().Method + ":" + c.Path() + ":" + caller + ":" + key
}

// Metrics collects request counts and latencies per route.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(namespace string, registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	registerer.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = classify(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.requests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
