package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/schoolcare/counselor-dashboard/internal/api/docs"
	"github.com/schoolcare/counselor-dashboard/internal/api/handler"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

// Deps carries what the router needs. Mongo and Redis are nil when the
// corresponding backend is not configured.
type Deps struct {
	Dashboard ports.DashboardService
	Mutations ports.MutationService
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Renderer = handler.NewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("counselor_dashboard_http"))

	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	mutationHandler := handler.NewMutationHandler(d.Mutations)

	// --- Page ---
	e.GET("/", dashboardHandler.Page)

	// --- Admin API ---
	admin := e.Group("/api/admin")
	admin.GET("/dashboard", dashboardHandler.Get)
	admin.POST("/reload", dashboardHandler.Reload)

	admin.GET("/counselors/options", dashboardHandler.CounselorOptions)
	admin.POST("/counselors", mutationHandler.AddCounselor)
	admin.DELETE("/counselors/:username", mutationHandler.RemoveCounselor)
	admin.POST("/counselors/:username/manage", mutationHandler.ManageCounselor)

	admin.GET("/students/export.xlsx", dashboardHandler.ExportStudents)
	admin.POST("/students", mutationHandler.AddStudent)
	admin.POST("/students/:name/assign", mutationHandler.AssignStudent)
	admin.POST("/students/:name/archive", mutationHandler.ArchiveStudent)

	admin.POST("/crises/:key/review", mutationHandler.MarkReviewed)
	admin.POST("/crises/:key/escalate", mutationHandler.Escalate)

	admin.GET("/audit", dashboardHandler.Audit)
	admin.GET("/audit/export.xlsx", dashboardHandler.ExportAudit)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Dashboard, d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
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
				Msg("request")
			return nil
		},
	})
}
