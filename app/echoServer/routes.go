package echoServer

import (
	"net/http"

	"bookcatalog/app/echoServer/controller/auth"
	"bookcatalog/app/echoServer/controller/book"
	"bookcatalog/app/echoServer/controller/scrape"
	"bookcatalog/app/echoServer/controller/stats"
	"bookcatalog/app/echoServer/jwtx"
	authsvc "bookcatalog/service/auth"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth   *auth.Controller
	Book   *book.Controller
	Stats  *stats.Controller
	Scrape *scrape.Controller

	AuthSvc   authsvc.Service
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.POST("/users", c.Auth.Register)
	e.POST("/users/login", c.Auth.Login)
	e.POST("/refresh", c.Auth.Refresh)

	// Gated
	gated := e.Group("")
	gated.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),
		ContextKey: "token",

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization:Bearer ",
		ErrorHandler: func(ctx echo.Context, err error) error {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"detail": "could not validate credentials"})
		},
	}))
	gated.Use(resolveUser(c.AuthSvc))

	gated.GET("/users/me", c.Auth.Me)

	gated.GET("/books", c.Book.List)
	gated.GET("/books/search", c.Book.Search)
	gated.GET("/books/top-rated", c.Book.TopRated)
	gated.GET("/books/price-range", c.Book.PriceRange)
	gated.GET("/books/:id", c.Book.Detail)

	gated.GET("/categories", c.Book.Categories)

	gated.GET("/stats/overview", c.Stats.Overview)
	gated.GET("/stats/categories", c.Stats.Categories)

	gated.POST("/scraping/trigger", c.Scrape.Trigger)
}

// resolveUser turns the verified token subject into a stored user. A
// token whose user has since been deleted is rejected like any other
// invalid token.
func resolveUser(svc authsvc.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sub, err := jwtx.SubjectFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"detail": "could not validate credentials"})
			}

			u, err := svc.Resolve(ctx.Request().Context(), sub)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"detail": "could not validate credentials"})
			}
			ctx.Set("user", u)
			return next(ctx)
		}
	}
}
