package scrape

import (
	"context"
	"log/slog"
	"net/http"

	scrapersvc "bookcatalog/service/scraper"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc scrapersvc.Service
	Log *slog.Logger
}

// POST /scraping/trigger
// @Summary      Trigger a catalog scrape
// @Description  Schedules a background crawl of the source site; returns immediately
// @Tags         scraping
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  map[string]any
// @Router       /scraping/trigger [post]
func (h *Controller) Trigger(c echo.Context) error {
	// Detached from the request context: the crawl outlives the call.
	go func() {
		if _, err := h.Svc.Run(context.Background()); err != nil {
			h.Log.Error("scrape run failed", "err", err)
		}
	}()

	return c.JSON(http.StatusAccepted, echo.Map{"message": "scraping scheduled"})
}
