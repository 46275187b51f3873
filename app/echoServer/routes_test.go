package echoServer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authctrl "bookcatalog/app/echoServer/controller/auth"
	bookctrl "bookcatalog/app/echoServer/controller/book"
	scrapectrl "bookcatalog/app/echoServer/controller/scrape"
	statsctrl "bookcatalog/app/echoServer/controller/stats"
	"bookcatalog/model"
	authsvc "bookcatalog/service/auth"
	booksvc "bookcatalog/service/book"
	jwtutil "bookcatalog/util/jwt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"log/slog"
	"os"
)

const testSecret = "gate-test-secret"

type authMock struct {
	users map[string]*model.User
}

var _ authsvc.Service = (*authMock)(nil)

func (m *authMock) Register(ctx context.Context, req model.RegisterReq) (*model.User, error) {
	return nil, nil
}
func (m *authMock) Login(ctx context.Context, req model.LoginReq) (*model.TokenPair, error) {
	return nil, authsvc.ErrInvalidCreds
}
func (m *authMock) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	return nil, authsvc.ErrInvalidToken
}
func (m *authMock) Resolve(ctx context.Context, subject string) (*model.User, error) {
	if u, ok := m.users[subject]; ok {
		return u, nil
	}
	return nil, authsvc.ErrInvalidCreds
}

type bookMock struct {
	booksvc.Service
}

func (m *bookMock) List(ctx context.Context) ([]model.Book, error) {
	return []model.Book{{ID: 1, Title: "Python Programming"}}, nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	v := validator.New()
	as := &authMock{users: map[string]*model.User{
		"halim": {ID: 7, Username: "halim"},
	}}

	e := echo.New()
	Register(e, C{
		Auth:   &authctrl.Controller{Svc: as, V: v, Log: log},
		Book:   &bookctrl.Controller{Svc: &bookMock{}, V: v, Log: log},
		Stats:  &statsctrl.Controller{Log: log},
		Scrape: &scrapectrl.Controller{Log: log},

		AuthSvc:   as,
		JWTSecret: testSecret,
	})
	return e
}

func do(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGate_NoToken(t *testing.T) {
	e := newTestServer(t)
	rec := do(e, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "detail")
}

func TestGate_ExpiredToken(t *testing.T) {
	e := newTestServer(t)
	tok, err := jwtutil.Issue(testSecret, "halim", -time.Second)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/books", tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGate_UnknownSubject(t *testing.T) {
	e := newTestServer(t)
	tok, err := jwtutil.Issue(testSecret, "deleted-user", time.Minute)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/books", tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGate_ValidTokenPasses(t *testing.T) {
	e := newTestServer(t)
	tok, err := jwtutil.Issue(testSecret, "halim", time.Minute)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/books", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Python Programming")

	me := do(e, http.MethodGet, "/users/me", tok)
	require.Equal(t, http.StatusOK, me.Code)
	require.Contains(t, me.Body.String(), `"username":"halim"`)
}
