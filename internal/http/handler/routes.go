package handler

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vidar/internal/http/middleware"
	"vidar/internal/model"
	"vidar/internal/service"
)

// Public page directories under PublicDir.
const (
	siteDir  = "paginaEsdib"
	adminDir = "formulario admin"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Donors        service.ResourceService[model.Donor]
	DonationTypes service.ResourceService[model.DonationType]
	Centers       service.ResourceService[model.Center]
	Donations     service.ResourceService[model.Donation]
	Contact       service.ResourceService[model.ContactMessage]
	News          service.ResourceService[model.NewsItem]
	Auth          service.AuthService
	Upload        service.UploadService
	Site          SiteViews
}

// Options carries the infrastructure the routes depend on.
type Options struct {
	APIKey      string
	AuthLimiter *middleware.LimiterStore
	DB          Pinger
	Metrics     prometheus.Gatherer
	PublicDir   string
}

// RegisterRoutes attaches every route to app. Static files come last so API paths win.
func RegisterRoutes(app *fiber.App, svc Services, opts Options) {
	app.Get("/health", HealthCheck(opts.DB))
	app.Get("/healthz", LivenessProbe())
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api", middleware.APIKey("/api", opts.APIKey))

	authLimit := func(c *fiber.Ctx) error { return c.Next() }
	if opts.AuthLimiter != nil {
		authLimit = middleware.RateLimit(opts.AuthLimiter)
	}
	authGroup := api.Group("/auth", authLimit)
	authGroup.Post("/register", Register(svc.Auth))
	authGroup.Post("/login", Login(svc.Auth))
	authGroup.Post("/logout", Logout())

	api.Post("/upload", Upload(svc.Upload))

	RegisterResource(api, model.CollectionDonors, svc.Donors)
	RegisterResource(api, model.CollectionDonationTypes, svc.DonationTypes)
	RegisterResource(api, model.CollectionCenters, svc.Centers)
	RegisterResource(api, model.CollectionDonations, svc.Donations)
	RegisterResource(api, model.CollectionContact, svc.Contact)
	RegisterResource(api, model.CollectionNews, svc.News)

	if svc.Site != nil {
		pages := app.Group("/site")
		pages.Get("/noticias", SiteNews(svc.Site))
		pages.Get("/centros", SiteMap(svc.Site))
	}

	if opts.PublicDir != "" {
		sitePath := filepath.Join(opts.PublicDir, siteDir)
		adminPath := filepath.Join(opts.PublicDir, adminDir)
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(sitePath, "index.html"))
		})
		app.Get("/admin", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(adminPath, "index.html"))
		})
		app.Static("/", sitePath)
		app.Static("/", adminPath)
	}
}
