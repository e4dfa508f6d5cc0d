package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"vidar/docs"
	"vidar/internal/config"
	"vidar/internal/database"
	"vidar/internal/database/migration"
	handlers "vidar/internal/http/handler"
	"vidar/internal/http/middleware"
	"vidar/internal/logger"
	"vidar/internal/model"
	"vidar/internal/normalize"
	"vidar/internal/notify"
	"vidar/internal/otel"
	mongorepo "vidar/internal/repository/mongo"
	"vidar/internal/service"
	"vidar/internal/site"
	"vidar/internal/storage"
)

// @title Vidar API
// @version 1.0
// @description Donation management: public site views and admin CRUD.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	db, err := database.New(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := migration.EnsureMigrated(ctx, db.Database(), log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Notify.ResendAPIKey != "" && len(cfg.Notify.To) > 0 {
		notifier = notify.NewResend(cfg.Notify.ResendAPIKey, cfg.Notify.From, cfg.Notify.To, log)
	} else {
		log.Info().Msg("contact notifications disabled")
	}

	// Repositories
	donors := mongorepo.NewCollection[model.Donor](db.Collection(model.CollectionDonors))
	types := mongorepo.NewCollection[model.DonationType](db.Collection(model.CollectionDonationTypes))
	centers := mongorepo.NewCollection[model.Center](db.Collection(model.CollectionCenters))
	donations := mongorepo.NewCollection[model.Donation](db.Collection(model.CollectionDonations))
	contact := mongorepo.NewCollection[model.ContactMessage](db.Collection(model.CollectionContact))
	news := mongorepo.NewCollection[model.NewsItem](db.Collection(model.CollectionNews))
	users := mongorepo.NewUsers(db.Collection(model.CollectionUsers))

	svc := handlers.Services{
		Donors:        service.NewResourceService[model.Donor](model.CollectionDonors, donors, normalize.Func[model.Donor](normalize.Donor)),
		DonationTypes: service.NewResourceService[model.DonationType](model.CollectionDonationTypes, types, normalize.Func[model.DonationType](normalize.DonationType)),
		Centers:       service.NewResourceService[model.Center](model.CollectionCenters, centers, normalize.Func[model.Center](normalize.Center)),
		Donations:     service.NewResourceService[model.Donation](model.CollectionDonations, donations, normalize.Func[model.Donation](normalize.Donation)),
		Contact: service.NewResourceService[model.ContactMessage](model.CollectionContact, contact, normalize.ContactNormalizer{},
			service.WithAfterCreate[model.ContactMessage](notifier.ContactReceived),
			service.WithLogger[model.ContactMessage](log),
		),
		News:   service.NewResourceService[model.NewsItem](model.CollectionNews, news, normalize.NewsNormalizer{}),
		Auth:   service.NewAuthService(users),
		Upload: service.NewUploadService(objStore, cfg.Upload.MaxBytes, cfg.Upload.AllowedTypes),
		Site:   site.NewService(news, centers, types),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	authLimiter := middleware.NewLimiterStore(cfg.Auth.RatePerMinute, cfg.Auth.RateBurst, time.Minute)
	defer authLimiter.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		// Multipart overhead on top of the largest accepted image
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
	})

	// Register global middleware
	app.Use(recover.New())
	app.Use(helmet.New(helmet.Config{
		// Map tiles and carousel assets come from third-party hosts
		ContentSecurityPolicy:     "",
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.APIKeyHeader,
		AllowCredentials: true,
	}))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, svc, handlers.Options{
		APIKey:      cfg.APIKey,
		AuthLimiter: authLimiter,
		DB:          db,
		Metrics:     reg,
		PublicDir:   cfg.PublicDir,
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("server listening")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("failed to start server")
	}

	cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Close(cleanupCtx); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
	if err := shutdownTracing(cleanupCtx); err != nil {
		log.Error().Err(err).Msg("failed to flush traces")
	}
}
