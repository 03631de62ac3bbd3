package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/taskmanager/internal/client/client"
	"github.com/dmitrijs2005/taskmanager/internal/common"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

const (
	helpAnonymous = "Available commands: register, login, help, exit"
	helpSignedIn  = "Available commands: (l)ist, add, show <id>, edit <id>, toggle <id>, delete <id>, whoami, logout, help, exit"
)

// runREPL reads one command per line from in and dispatches it to a. The
// loop ends on EOF, on "exit"/"quit" or when ctx is done. Task commands
// need a session; commands taking a task id print their usage when it is
// missing. Handler errors are reported and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("tm %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		report(dispatch(ctx, a, cmd, args))
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpAnonymous)
		}
		return nil
	case "register", "signup":
		return a.Register(ctx)
	case "login", "signin":
		return a.Login(ctx)
	}

	withID := map[string]func(context.Context, string) error{
		"show":   a.Show,
		"edit":   a.Edit,
		"toggle": a.Toggle,
		"delete": a.Delete,
	}
	plain := map[string]func(context.Context) error{
		"l":      a.List,
		"list":   a.List,
		"add":    a.Add,
		"whoami": a.Whoami,
		"logout": a.Logout,
	}

	fn, takesID := withID[cmd]
	fn0, ok := plain[cmd]
	if !takesID && !ok {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	if !takesID {
		return fn0(ctx)
	}
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return nil
	}
	return fn(ctx, args[0])
}

// report prints err in user terms.
func report(err error) {
	if err == nil {
		return
	}

	var apiErr *client.APIError
	switch {
	case errors.Is(err, errSessionExpired):
		printlnFn("Session expired, please login again")
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable, try again later")
	case errors.Is(err, common.ErrorInvalidCredentials):
		printlnFn("Invalid email or password")
	case errors.As(err, &apiErr):
		printlnFn("Error:", apiErr.Error())
	default:
		printlnFn("Error:", err.Error())
	}
}
