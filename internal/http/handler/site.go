package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"vidar/internal/site"
)

// SiteViews builds the public page views.
type SiteViews interface {
	News(ctx context.Context) (site.NewsView, error)
	Map(ctx context.Context, filter string) (site.MapView, error)
}

// SiteNews godoc
// @Summary News carousel
// @Tags site
// @Produce json
// @Success 200 {object} site.NewsView
// @Router /site/noticias [get]
func SiteNews(views SiteViews) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := views.News(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(v)
	}
}

// SiteMap godoc
// @Summary Center locator
// @Tags site
// @Produce json
// @Param tipo query string false "donation type id or all"
// @Success 200 {object} site.MapView
// @Router /site/centros [get]
func SiteMap(views SiteViews) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := views.Map(c.UserContext(), c.Query("tipo", site.AllFilter))
		if err != nil {
			return err
		}
		return c.JSON(v)
	}
}
