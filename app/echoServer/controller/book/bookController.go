package book

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	booksvc "bookcatalog/service/book"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /books
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Book
// @Failure      404  {object}  map[string]any "empty catalog"
// @Router       /books [get]
func (h *Controller) List(c echo.Context) error {
	books, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.mapErr(c, err, "book list error")
	}
	return c.JSON(http.StatusOK, books)
}

// GET /books/search?title=&category=
// @Summary      Search books by title and/or category substring
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        title     query  string  false  "title substring"
// @Param        category  query  string  false  "category substring"
// @Success      200  {array}   model.Book
// @Failure      404  {object}  map[string]any
// @Router       /books/search [get]
func (h *Controller) Search(c echo.Context) error {
	books, err := h.Svc.Search(c.Request().Context(), c.QueryParam("title"), c.QueryParam("category"))
	if err != nil {
		return h.mapErr(c, err, "book search error")
	}
	return c.JSON(http.StatusOK, books)
}

// GET /books/top-rated?limit=
// @Summary      Top rated books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "max results"  default(10)
// @Success      200  {array}   model.Book
// @Failure      404  {object}  map[string]any
// @Router       /books/top-rated [get]
func (h *Controller) TopRated(c echo.Context) error {
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "limit must be a positive integer"})
		}
		limit = n
	}

	books, err := h.Svc.TopRated(c.Request().Context(), limit)
	if err != nil {
		return h.mapErr(c, err, "top rated error")
	}
	return c.JSON(http.StatusOK, books)
}

// GET /books/price-range?min=&max=
// @Summary      Books within an inclusive price range
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        min  query  number  true  "minimum price"
// @Param        max  query  number  true  "maximum price"
// @Success      200  {array}   model.Book
// @Failure      400  {object}  map[string]any "non-numeric bound"
// @Failure      404  {object}  map[string]any
// @Router       /books/price-range [get]
func (h *Controller) PriceRange(c echo.Context) error {
	min, err := strconv.ParseFloat(c.QueryParam("min"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "min must be a number"})
	}
	max, err := strconv.ParseFloat(c.QueryParam("max"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "max must be a number"})
	}

	// A swapped range is not rejected; it just matches nothing.
	books, err := h.Svc.ByPriceRange(c.Request().Context(), min, max)
	if err != nil {
		return h.mapErr(c, err, "price range error")
	}
	return c.JSON(http.StatusOK, books)
}

// GET /books/:id
// @Summary      Book detail
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "book id"
// @Success      200  {object}  model.Book
// @Failure      404  {object}  map[string]any
// @Failure      422  {object}  map[string]any "non-positive id"
// @Router       /books/{id} [get]
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "id must be a positive integer"})
	}

	b, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booksvc.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "book with id " + c.Param("id") + " not found"})
		}
		h.Log.Error("book detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
	}
	return c.JSON(http.StatusOK, b)
}

// GET /categories
// @Summary      Distinct categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  string
// @Router       /categories [get]
func (h *Controller) Categories(c echo.Context) error {
	cats, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		h.Log.Error("categories error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
	}
	if cats == nil {
		cats = []string{}
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *Controller) mapErr(c echo.Context, err error, logMsg string) error {
	if errors.Is(err, booksvc.ErrNoBooks) {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "no books found"})
	}
	h.Log.Error(logMsg, "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
}
