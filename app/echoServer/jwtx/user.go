// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"bookcatalog/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SubjectFromContext reads the sub claim placed by the echo-jwt
// middleware.
func SubjectFromContext(c echo.Context) (string, error) {
	tok, ok := c.Get("token").(*jwt.Token)
	if !ok || tok == nil {
		return "", errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid jwt claims")
	}
	if s, ok := claims["sub"].(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("sub missing in claims")
}

// UserFromContext returns the user resolved by the auth gate.
func UserFromContext(c echo.Context) (*model.User, error) {
	u, ok := c.Get("user").(*model.User)
	if !ok || u == nil {
		return nil, errors.New("no user in context")
	}
	return u, nil
}
