// Package rest exposes the task manager over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/logging"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

type UserService interface {
	Signup(ctx context.Context, email, fullName, password string) (*models.PublicUser, error)
	Signin(ctx context.Context, email, password string) (*models.SigninResult, error)
}

type TaskService interface {
	Create(ctx context.Context, id models.Identity, title string, description *string) (*models.Task, error)
	ListOwned(ctx context.Context, id models.Identity) ([]models.Task, error)
	Get(ctx context.Context, id models.Identity, taskID string) (*models.Task, error)
	Update(ctx context.Context, id models.Identity, taskID string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id models.Identity, taskID string) (*models.Task, error)
}

type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

type Options struct {
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type Server struct {
	address string
	users   UserService
	tasks   TaskService
	tokens  TokenVerifier
	logger  logging.Logger
	opts    Options
}

func NewServer(a string, l logging.Logger, us UserService, ts TaskService, tv TokenVerifier, opts Options) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		tasks:   ts,
		tokens:  tv,
		opts:    opts,
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.recoverPanic(s.logRequests(s.trace(s.enableCORS(s.routes()))))
}

var netListen = net.Listen

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	listen, err := netListen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       time.Minute,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	serveDone := make(chan struct{})
	shutdownErr := make(chan error, 1)
	go func() {
		select {
		case <-ctx.Done():
		case <-serveDone:
			shutdownErr <- nil
			return
		}
		s.logger.Info(ctx, "Stopping HTTP server...")

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	err = srv.Serve(listen)
	close(serveDone)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		<-shutdownErr
		return err
	}

	return <-shutdownErr
}
