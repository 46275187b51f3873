package authsvc

import (
	"context"
	"errors"
	"time"

	"bookcatalog/model"
	userrepo "bookcatalog/repository/user"
	"bookcatalog/util/hash"
	jwtutil "bookcatalog/util/jwt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserExists   = errors.New("username already registered")
	ErrInvalidCreds = errors.New("invalid credentials")
	ErrInvalidToken = errors.New("invalid token")
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, error)
	Login(ctx context.Context, req model.LoginReq) (*model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)
	Resolve(ctx context.Context, subject string) (*model.User, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, error) {
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     req.Username,
		PasswordHash: hashed,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

// Login fails with ErrInvalidCreds for both an unknown username and a
// wrong password, so callers cannot enumerate usernames.
func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.TokenPair, error) {
	u, err := s.ur.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCreds
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCreds
	}
	return s.issuePair(u.Username)
}

// Refresh verifies the refresh token exactly like an access token and
// issues a fresh pair for the same subject. The old refresh token is
// not revoked; it stays usable until its own expiry.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	sub, err := jwtutil.Parse(refreshToken, s.secret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	// Subject must still resolve to a live user.
	if _, err := s.ur.ByUsername(ctx, sub); err != nil {
		return nil, ErrInvalidToken
	}
	return s.issuePair(sub)
}

// Resolve maps a verified token subject back to a stored user. A valid
// token for a since-deleted user still fails authentication.
func (s *service) Resolve(ctx context.Context, subject string) (*model.User, error) {
	u, err := s.ur.ByUsername(ctx, subject)
	if err != nil {
		return nil, ErrInvalidCreds
	}
	return u, nil
}

func (s *service) issuePair(subject string) (*model.TokenPair, error) {
	access, err := jwtutil.Issue(s.secret, subject, AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := jwtutil.Issue(s.secret, subject, RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
