// Package cli implements the interactive command-line client of the task
// manager: a small REPL over the auth and task services that keeps the
// signed-in session in a local SQLite file between runs.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/taskmanager/internal/client/client"
	"github.com/dmitrijs2005/taskmanager/internal/client/config"
	"github.com/dmitrijs2005/taskmanager/internal/client/models"
	"github.com/dmitrijs2005/taskmanager/internal/client/services"
	"github.com/dmitrijs2005/taskmanager/internal/common"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	authService services.AuthService
	taskService services.TaskService
	session     *models.Session
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:      c,
		db:          db,
		authService: services.NewAuthService(apiClient, db),
		taskService: services.NewTaskService(apiClient),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run restores the remembered session, if any, and serves the REPL until
// the user exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	fmt.Fprintln(a.out, "Welcome to Task Manager CLI (type 'help' for commands)")

	if err := a.authService.Ping(ctx); err != nil {
		log.Printf("server %s is not reachable: %s", a.config.ServerURL, err.Error())
	}
	a.restoreSession(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restoreSession(ctx context.Context) {
	s, err := a.authService.Current(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrSessionMissing) {
			log.Printf("could not restore session: %s", err.Error())
		}
		return
	}
	a.session = s
	fmt.Fprintf(a.out, "Signed in as %s\n", s.User.Email)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	if a.session == nil {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s)", a.session.User.Email)
}
