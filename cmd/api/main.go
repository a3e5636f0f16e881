package main

import (
	"context"
	"net/http"
	"os"

	"github.com/afflo-hq/afflo-backend/api/routes"
	"github.com/afflo-hq/afflo-backend/internal/admins"
	"github.com/afflo-hq/afflo-backend/internal/affiliates"
	"github.com/afflo-hq/afflo-backend/internal/auth"
	"github.com/afflo-hq/afflo-backend/internal/events"
	"github.com/afflo-hq/afflo-backend/internal/partners"
	"github.com/afflo-hq/afflo-backend/internal/users"
	storefrontwebhook "github.com/afflo-hq/afflo-backend/internal/webhooks/storefront"
	"github.com/afflo-hq/afflo-backend/pkg/auth/session"
	"github.com/afflo-hq/afflo-backend/pkg/config"
	"github.com/afflo-hq/afflo-backend/pkg/db"
	"github.com/afflo-hq/afflo-backend/pkg/logger"
	"github.com/afflo-hq/afflo-backend/pkg/metrics"
	"github.com/afflo-hq/afflo-backend/pkg/migrate"
	"github.com/afflo-hq/afflo-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	partnerRepo := partners.NewRepository(dbClient.DB())
	adminRepo := admins.NewRepository(dbClient.DB())
	affiliateRepo := affiliates.NewRepository(dbClient.DB())
	eventRepo := events.NewRepository(dbClient.DB())

	partnerService, err := partners.NewService(partners.ServiceParams{
		PartnerRepo: partnerRepo,
		AdminRepo:   adminRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create partner service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		TenantResolver: partnerService,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		Federation:     cfg.Federation,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	setupCompanyService, err := auth.NewSetupCompanyService(auth.SetupCompanyServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create setup-company service", err)
		os.Exit(1)
	}

	affiliateService, err := affiliates.NewService(affiliates.ServiceParams{
		AffiliateRepo: affiliateRepo,
		UserRepo:      userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create affiliate service", err)
		os.Exit(1)
	}

	eventService, err := events.NewService(events.ServiceParams{
		EventRepo:   eventRepo,
		LinkChecker: affiliateRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create event service", err)
		os.Exit(1)
	}

	storefrontService, err := storefrontwebhook.NewService(storefrontwebhook.ServiceParams{
		PartnerRepo:  partnerRepo,
		EventService: eventService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create storefront webhook service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:              cfg,
			Logger:              logg,
			DB:                  dbClient,
			Redis:               redisClient,
			SessionManager:      sessionManager,
			HTTPMetrics:         httpMetrics,
			AuthService:         authService,
			RegisterService:     registerService,
			SetupCompanyService: setupCompanyService,
			PartnerService:      partnerService,
			PartnerRepo:         partnerRepo,
			AffiliateService:    affiliateService,
			EventService:        eventService,
			StorefrontWebhook:   storefrontService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
