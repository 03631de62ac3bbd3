// Package services contains the application services of the task manager CLI:
// account and session handling (AuthService) and task operations
// (TaskService) on top of the HTTP API client.
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/client/client"
	"github.com/dmitrijs2005/taskmanager/internal/client/models"
	"github.com/dmitrijs2005/taskmanager/internal/client/repositories/session"
	"github.com/dmitrijs2005/taskmanager/internal/common"
)

// AuthService defines account and session operations for the CLI.
//
//   - Signup: create an account and sign straight in with it.
//   - Signin: obtain a token and remember the session locally.
//   - Logout: forget the local session.
//   - Current: restore the remembered session, or common.ErrSessionMissing.
//   - Ping: check server liveness.
type AuthService interface {
	Signup(ctx context.Context, email, fullName, password string) (*models.Session, error)
	Signin(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Session, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and
// local session database.
func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db, now: time.Now}
}

func (a *authService) getSessionRepo() session.Repository {
	return session.NewSQLiteRepository(a.db)
}

func (a *authService) Signup(ctx context.Context, email, fullName, password string) (*models.Session, error) {
	if _, err := a.client.Signup(ctx, email, fullName, password); err != nil {
		return nil, err
	}
	return a.Signin(ctx, email, password)
}

func (a *authService) Signin(ctx context.Context, email, password string) (*models.Session, error) {
	res, err := a.client.Signin(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s := &models.Session{AccessToken: res.AccessToken, User: res.User, SavedAt: a.now().UTC().Truncate(time.Second)}
	if err := a.getSessionRepo().Save(ctx, s); err != nil {
		return nil, err
	}
	a.client.SetAccessToken(s.AccessToken)
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	return a.getSessionRepo().Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*models.Session, error) {
	s, err := a.getSessionRepo().Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, common.ErrSessionMissing
	}
	a.client.SetAccessToken(s.AccessToken)
	return s, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Health(ctx)
}
