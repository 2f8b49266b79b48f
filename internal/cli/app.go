package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/logging"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/models"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/services"
)

// App is one interactive shell session.
type App struct {
	users  services.UserService
	log    logging.Logger
	prompt *Prompter
	out    io.Writer

	current *models.User
}

func NewApp(users services.UserService, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{users: users, log: log, prompt: NewPrompter(in, out), out: out}
}

// Run blocks until the user exits, the input ends or ctx is cancelled. Only
// the last case is an error.
func (a *App) Run(ctx context.Context) error {
	a.log.Debug(ctx, "shell started")
	fmt.Fprintln(a.out, "User registry (type 'help' for commands)")
	if err := runREPL(ctx, a, a.prompt, a.out); err != nil {
		a.log.Info(ctx, "shell interrupted")
		return err
	}
	a.log.Debug(ctx, "shell finished")
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.current != nil
}

func (a *App) status() string {
	if a.current == nil {
		return ""
	}
	return " (" + a.current.Email + ")"
}
