package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/roseyco/agency-portal/docs"
	"github.com/roseyco/agency-portal/internal/api/handler"
	"github.com/roseyco/agency-portal/internal/api/middleware"
	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/service"
)

// Dependencies are the collaborators the HTTP layer is built from.
// Mongo and Redis are optional and only used by the readiness probe.
type Dependencies struct {
	Providers middleware.ProviderSource
	Workspace *service.WorkspaceService
	Mongo     *mongo.Database
	Redis     redis.UniversalClient
	Logger    zerolog.Logger

	ContextSecret string
	CookieSecure  bool
	RestoreWait   time.Duration

	// Metrics defaults to the process-wide Prometheus registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portal",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health" || c.Path() == "/health/ready"
		},
	}))

	// --- Operational endpoints (no browser context) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Browser-context scoped routes ---
	scoped := []echo.MiddlewareFunc{
		middleware.BrowserContext(middleware.BrowserContextConfig{
			Secret: deps.ContextSecret,
			Secure: deps.CookieSecure,
		}),
		middleware.Session(deps.Providers, deps.RestoreWait),
	}

	sessionHandler := handler.NewSessionHandler()
	viewHandler := handler.NewViewHandler()
	workspaceHandler := handler.NewWorkspaceHandler(deps.Workspace)

	apiGroup := e.Group("/api", scoped...)
	apiGroup.POST("/session", sessionHandler.Login)
	apiGroup.GET("/session", sessionHandler.Current)
	apiGroup.DELETE("/session", sessionHandler.Logout)
	apiGroup.GET("/view", viewHandler.View)
	apiGroup.GET("/navigation", viewHandler.Navigation, middleware.RequireSession())

	ws := apiGroup.Group("/workspace", middleware.RequireSession())
	ws.GET("/admin/clients", workspaceHandler.AdminClients, middleware.RBAC(domain.RoleAdmin))
	ws.GET("/admin/metrics", workspaceHandler.AdminMetrics, middleware.RBAC(domain.RoleAdmin))
	ws.GET("/client/projects", workspaceHandler.ClientProjects, middleware.RBAC(domain.RoleClient))

	// Everything else is a browser navigation evaluated by the route guard.
	e.GET("/*", viewHandler.Navigate, scoped...)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("context_id", middleware.ContextID(c)).
				Msg("request")
			return nil
		},
	})
}
