package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/afflo-hq/afflo-backend/api/controllers"
	webhookcontrollers "github.com/afflo-hq/afflo-backend/api/controllers/webhooks"
	"github.com/afflo-hq/afflo-backend/api/middleware"
	"github.com/afflo-hq/afflo-backend/internal/affiliates"
	"github.com/afflo-hq/afflo-backend/internal/auth"
	"github.com/afflo-hq/afflo-backend/internal/events"
	"github.com/afflo-hq/afflo-backend/internal/partners"
	storefrontwebhook "github.com/afflo-hq/afflo-backend/internal/webhooks/storefront"
	"github.com/afflo-hq/afflo-backend/pkg/auth/session"
	"github.com/afflo-hq/afflo-backend/pkg/config"
	"github.com/afflo-hq/afflo-backend/pkg/db"
	"github.com/afflo-hq/afflo-backend/pkg/logger"
	"github.com/afflo-hq/afflo-backend/pkg/metrics"
	"github.com/afflo-hq/afflo-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionManager sessionManager
	HTTPMetrics    *metrics.HTTPMetrics

	AuthService         auth.Service
	RegisterService     auth.RegisterService
	SetupCompanyService auth.SetupCompanyService
	PartnerService      partners.Service
	PartnerRepo         *partners.Repository
	AffiliateService    affiliates.Service
	EventService        events.Service
	StorefrontWebhook   *storefrontwebhook.Service
	MetricsHandler      http.Handler
}

// NewRouter assembles the chi router with the full middleware chain.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis, logg))
	})

	metricsHandler := p.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/storefront/{partnerId}", webhookcontrollers.StorefrontWebhook(p.StorefrontWebhook, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, p.Redis, logg)).Post("/signup", controllers.AuthSignup(p.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, cfg.JWT, logg))
		r.Get("/providers", controllers.AuthProviders(p.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))
			r.Post("/setup-company", controllers.AuthSetupCompany(p.SetupCompanyService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))

		r.Route("/partners", func(r chi.Router) {
			r.Get("/me", controllers.PartnerMe(p.PartnerService, logg))
			r.Get("/", controllers.PartnerList(p.PartnerService, logg))
			r.Post("/", controllers.PartnerCreate(p.PartnerRepo, logg))
			r.Get("/{id}", controllers.PartnerGet(p.PartnerService, logg))
		})

		r.Route("/affiliates", func(r chi.Router) {
			r.Post("/", controllers.AffiliateCreate(p.AffiliateService, logg))
			r.Get("/{id}", controllers.AffiliateGet(p.AffiliateService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.PartnerContext(p.PartnerService, logg))
				r.Get("/", controllers.AffiliateList(p.AffiliateService, logg))
				r.Post("/{id}/partners", controllers.AffiliateLinkPartner(p.AffiliateService, logg))
			})
		})

		r.Route("/affiliate-events", func(r chi.Router) {
			r.Use(middleware.PartnerContext(p.PartnerService, logg))
			r.Post("/", controllers.EventCreate(p.EventService, logg))
			r.Get("/", controllers.EventList(p.EventService, logg))
			r.Get("/{id}", controllers.EventGet(p.EventService, logg))
		})
	})

	return r
}
