package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bondspire/intake-api/internal/auth"
	"github.com/bondspire/intake-api/internal/config"
	"github.com/bondspire/intake-api/internal/handler"
	middlewarepkg "github.com/bondspire/intake-api/internal/middleware"
)

// Public intake routes.
const (
	PathContact     = "/api/contact"
	PathNewsletter  = "/api/newsletter-signup"
	PathPartnership = "/api/partnership"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Intake *handler.IntakeHandler
	Admin  *handler.AdminHandler
}

// Register wires all HTTP routes for the API and the client address resolution the intake
// limiter keys on. Admin listings are only mounted when a JWT manager and an admin handler are
// supplied.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.IPExtractor = middlewarepkg.ClientIPExtractor(cfg.TrustedProxies)

	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("", middlewarepkg.IntakeRateLimiter(cfg.RateLimitIntake, PathContact, PathNewsletter, PathPartnership))

	api.GET(PathContact, handler.Info("Contact API endpoint"))
	api.GET(PathNewsletter, handler.Info("Newsletter signup API endpoint"))
	api.GET(PathPartnership, handler.Info("Partnership API endpoint"))

	if handlers.Intake != nil {
		api.POST(PathContact, handlers.Intake.Contact)
		api.POST(PathNewsletter, handlers.Intake.Newsletter)
		api.POST(PathPartnership, handlers.Intake.Partnership)
	}

	if jwtManager == nil || handlers.Admin == nil {
		return
	}

	admin := e.Group("/admin", middlewarepkg.JWT(jwtManager), middlewarepkg.RequireRole(auth.RoleAdmin))
	admin.GET("/submissions", handlers.Admin.ListSubmissions)
	admin.GET("/subscriptions", handlers.Admin.ListSubscriptions)
}
