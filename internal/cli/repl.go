package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// errNeedLogin and errNeedLogout report commands used from the wrong menu.
var (
	errNeedLogin  = errors.New("log in first")
	errNeedLogout = errors.New("log out first")
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	status() string

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Backup(ctx context.Context, args []string) error
}

type lineReader interface {
	Line(ctx context.Context) (string, error)
}

const (
	mainMenuHelp = "Available commands: register, login, help, exit"
	userMenuHelp = "Available commands: (l)ist, rename [id] [name], delete [id], whoami, backup [path], logout, help, exit"
)

// runREPL reads one command per line and dispatches it to a. The first token
// is the command and the rest are its arguments.
//
//	Main menu:
//	  - register         create an account
//	  - login            authenticate and open the user menu
//	  - help, exit
//
//	User menu:
//	  - list | l         list all users
//	  - rename           change a user's name
//	  - delete           remove a user
//	  - whoami           show the logged-in user
//	  - backup           copy the data file
//	  - logout           back to the main menu
//	  - help, exit
//
// Errors from handlers are printed and the loop goes on. The loop ends on
// "exit", "quit" or end of input with a nil error, and returns ctx.Err() once
// ctx is cancelled, even while it waits for input.
func runREPL(ctx context.Context, a execIface, in lineReader, w io.Writer) error {
	for {
		fmt.Fprintf(w, "usercrud%s> ", a.status())

		line, err := in.Line(ctx)
		if err != nil {
			fmt.Fprintln(w)
			return ctx.Err()
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, userMenuHelp)
			} else {
				fmt.Fprintln(w, mainMenuHelp)
			}
			continue

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return nil
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(w)
				return ctx.Err()
			}
			fmt.Fprintln(w, "Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	if !a.isLoggedIn() {
		switch cmd {
		case "register":
			return a.Register(ctx, args)
		case "login":
			return a.Login(ctx, args)
		case "l", "list", "rename", "delete", "whoami", "backup", "logout":
			return errNeedLogin
		}
		return fmt.Errorf("unknown command %q", cmd)
	}

	switch cmd {
	case "l", "list":
		return a.List(ctx, args)
	case "rename":
		return a.Rename(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "whoami":
		return a.WhoAmI(ctx, args)
	case "backup":
		return a.Backup(ctx, args)
	case "logout":
		return a.Logout(ctx, args)
	case "register", "login":
		return errNeedLogout
	}
	return fmt.Errorf("unknown command %q", cmd)
}
