package bootstrap

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/drivingschool/internal/app/controllers"
	appRoutes "github.com/yigit/drivingschool/internal/app/routes"
	"github.com/yigit/drivingschool/internal/app/sessions"
	"github.com/yigit/drivingschool/internal/config"
	appMiddleware "github.com/yigit/drivingschool/internal/middleware"
	"github.com/yigit/drivingschool/internal/pkg/backend"
	"github.com/yigit/drivingschool/internal/pkg/logger"
	"github.com/yigit/drivingschool/internal/web"
)

// DefaultConfigPath is read when CONFIG_PATH is unset
const DefaultConfigPath = "config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Backend              *backend.Client
	Sessions             *sessions.Store
	Registry             *prometheus.Registry
	HTTPMetrics          *appMiddleware.HTTPMetrics
	RateLimiter          *appMiddleware.RateLimiter
	RosterController     *appControllers.RosterController
	EnrollmentController *appControllers.EnrollmentController
	HealthController     *appControllers.HealthController
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: !strings.EqualFold(cfg.Logging.Format, "json"),
	})

	lgr := logger.Get()
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Strs("envOverrides", config.OverriddenKeys()).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies wires the backend client, session store and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	timeout := cfg.BackendTimeout(backend.DefaultTimeout)
	deps.Backend = backend.New(cfg.APIBaseURL(), timeout, backend.NewMetrics(deps.Registry))
	if deps.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is empty")
	}
	lgr.Info().Str("baseURL", deps.Backend.BaseURL).Dur("timeout", timeout).Msg("Backend client configured")

	idleTTL := cfg.SessionIdleTTL(sessions.DefaultIdleTTL)
	deps.Sessions = sessions.NewStore(idleTTL, deps.Registry)

	deps.HTTPMetrics = appMiddleware.NewHTTPMetrics(deps.Registry)
	deps.RateLimiter = appMiddleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.PerMinute)

	deps.RosterController = appControllers.NewRosterController(deps.Backend, cfg.Roster.PageSize, cfg.Roster.Editable)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.Backend)
	deps.HealthController = appControllers.NewHealthController(deps.Backend, timeout)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(deps.HTTPMetrics.Middleware())

	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
		lgr.Info().Strs("origins", origins).Msg("CORS enabled")
	}

	router.Use(appMiddleware.SecurityHeaders())
	router.Use(deps.RateLimiter.Middleware())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	appRoutes.SetupRouter(router,
		deps.RosterController,
		deps.EnrollmentController,
		deps.HealthController,
		appMiddleware.Sessions(deps.Sessions, cfg.Session.CookieSecure),
		promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}),
		web.Static(),
	)

	return router, nil
}
