package http

import (
	"log/slog"
	"net/http"

	"travelagency/internal/core/ports"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries the collaborators of the HTTP router. Idempotency and
// ErrorRecorder are optional. An empty BodyLimit means DefaultBodyLimit.
type RouterConfig struct {
	Logger        *slog.Logger
	Verifier      ports.TokenVerifier
	Idempotency   IdempotencyStore
	ErrorRecorder ErrorRecorder
	Registry      *prometheus.Registry
	Namespace     string
	CORSOrigins   []string
	BodyLimit     string
	OpenAPI       *openapi3.T
}

// DefaultBodyLimit caps request bodies when RouterConfig.BodyLimit is empty.
const DefaultBodyLimit = "1M"

// NewRouter builds the echo instance with every route and middleware.
func NewRouter(cfg RouterConfig, server *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger, cfg.ErrorRecorder)

	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(cfg.Logger)))
	if cfg.Registry != nil {
		e.Use(NewMetrics(cfg.Namespace, cfg.Registry).Middleware())
	}
	e.Use(middleware.Recover())
	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = DefaultBodyLimit
	}
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowHeaders:  []string{echo.HeaderContentType, AuthHeader, IdempotencyHeader},
		ExposeHeaders: []string{AuthHeader},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Registry != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}
	if cfg.OpenAPI != nil {
		e.GET("/openapi.json", func(c echo.Context) error {
			return c.JSON(http.StatusOK, cfg.OpenAPI)
		})
		e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.json")))
	}

	authenticate := Authenticate(cfg.Verifier)
	create := []echo.MiddlewareFunc{}
	if cfg.Idempotency != nil {
		create = append(create, Idempotency(cfg.Idempotency, cfg.Logger))
	}

	users := e.Group("/api/users")
	users.POST("", server.RegisterUser, create...)
	users.POST("/login", server.Login)
	users.GET("/:id", server.GetUser, authenticate)
	users.PUT("/:id", server.UpdateUser, authenticate)
	users.PATCH("/:id", server.SetUserRoles, authenticate)
	users.DELETE("/:id", server.DeleteUser, authenticate)

	orders := e.Group("/api/orders", authenticate)
	orders.GET("", server.ListAllOrders)
	orders.POST("", server.CreateOrder, create...)
	orders.GET("/my-orders", server.ListMyOrders)
	orders.PATCH("/agent/:id", server.AssignAgent)
	orders.PATCH("/status/:id", server.ChangeOrderStatus)
	orders.GET("/:id", server.GetOrder)
	orders.PATCH("/:id", server.UpdateOrder)
	orders.DELETE("/:id", server.DeleteOrder)

	return e
}

func requestLoggerConfig(logger *slog.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}
}
