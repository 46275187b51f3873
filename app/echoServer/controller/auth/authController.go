// app/echoServer/controller/auth/authController.go
package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"bookcatalog/app/echoServer/jwtx"
	"bookcatalog/model"
	authsvc "bookcatalog/service/auth"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new user
// @Summary      Register user
// @Description  Register a new user with a unique username
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "username already taken"
// @Failure      500  {object}  map[string]any
// @Router       /users [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq

	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "validation error"})
	}

	u, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrUserExists):
			return c.JSON(http.StatusConflict, echo.Map{"detail": "username already registered"})
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("register failed", "err", err, "req_id", rid, "path", c.Path())
			return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "register failed"})
		}
	}

	return c.JSON(http.StatusCreated, u)
}

// Login
// @Summary      Login
// @Description  Login with username + password, returns access and refresh tokens
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  model.TokenPair
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /users/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq

	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "validation error"})
	}

	pair, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidCreds):
			// Unknown user and wrong password answer identically.
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "user or password incorrect"})
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("login failed", "err", err, "req_id", rid, "path", c.Path())
			return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "login failed"})
		}
	}

	return c.JSON(http.StatusOK, pair)
}

// Refresh
// @Summary      Refresh tokens
// @Description  Exchange a valid refresh token for a new token pair
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RefreshReq  true  "Refresh payload"
// @Success      200  {object}  model.TokenPair
// @Failure      401  {object}  map[string]any
// @Router       /refresh [post]
func (ct *Controller) Refresh(c echo.Context) error {
	var req model.RefreshReq

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "validation error"})
	}

	pair, err := ct.Svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidToken):
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "could not validate credentials"})
		default:
			ct.Log.Error("refresh failed", "err", err, "path", c.Path())
			return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "refresh failed"})
		}
	}

	return c.JSON(http.StatusOK, pair)
}

// Me
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Failure      401  {object}  map[string]any
// @Router       /users/me [get]
func (ct *Controller) Me(c echo.Context) error {
	u, err := jwtx.UserFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "could not validate credentials"})
	}
	return c.JSON(http.StatusOK, u)
}
