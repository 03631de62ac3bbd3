package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskmanager/internal/client/client"
	"github.com/dmitrijs2005/taskmanager/internal/common"
)

// getSimpleText and getPassword are indirections swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errSessionExpired = errors.New("session expired")

// Register creates an account and signs in with it straight away.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Signup(ctx, email, fullName, string(password))
	if err != nil {
		return err
	}
	a.session = s
	fmt.Fprintf(a.out, "Welcome, %s!\n", s.User.FullName)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Signin(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.session = s
	fmt.Fprintf(a.out, "Signed in as %s\n", s.User.Email)
	return nil
}

// Logout forgets the local session. The token itself stays valid on the
// server until it expires.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) Whoami(_ context.Context) error {
	u := a.session.User
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", u.FullName, u.Email, u.ID)
	return nil
}

// checkAuth drops the local session when the server no longer accepts its
// token.
func (a *App) checkAuth(ctx context.Context, err error) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	if lerr := a.authService.Logout(ctx); lerr != nil {
		return lerr
	}
	a.session = nil
	return errSessionExpired
}
