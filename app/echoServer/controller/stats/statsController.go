package stats

import (
	"log/slog"
	"net/http"

	"bookcatalog/model"
	statssvc "bookcatalog/service/stats"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc statssvc.Service
	Log *slog.Logger
}

// GET /stats/overview
// @Summary      General collection statistics
// @Description  Total book count, average price and rating distribution
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.OverviewStats
// @Failure      500  {object}  map[string]any
// @Router       /stats/overview [get]
func (h *Controller) Overview(c echo.Context) error {
	st, err := h.Svc.Overview(c.Request().Context())
	if err != nil {
		h.Log.Error("overview stats error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "error calculating general statistics"})
	}
	return c.JSON(http.StatusOK, st)
}

// GET /stats/categories
// @Summary      Statistics grouped by category
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.CategoryStats
// @Failure      500  {object}  map[string]any
// @Router       /stats/categories [get]
func (h *Controller) Categories(c echo.Context) error {
	stats, err := h.Svc.ByCategory(c.Request().Context())
	if err != nil {
		h.Log.Error("category stats error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "error calculating statistics by category"})
	}
	if stats == nil {
		stats = []model.CategoryStats{}
	}
	return c.JSON(http.StatusOK, stats)
}
