package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/common"
)

// Register prompts for name, email and password and creates the account.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := a.prompt.Text(ctx, "Name")
	if err != nil {
		return err
	}
	email, err := a.prompt.Text(ctx, "Email")
	if err != nil {
		return err
	}
	password, err := a.prompt.Password(ctx, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.users.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User registered with id %d.\n", id)
	return nil
}

// Login prompts for credentials and, on success, switches to the user menu.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := a.prompt.Text(ctx, "Email")
	if err != nil {
		return err
	}
	password, err := a.prompt.Password(ctx, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.users.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}

	a.current = &u
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	a.current = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) List(ctx context.Context, _ []string) error {
	return printUsers(a.out, a.users.List(ctx), outputText)
}

// Rename takes the id and new name from args, prompting for whatever is missing.
func (a *App) Rename(ctx context.Context, args []string) error {
	id, err := a.idArg(ctx, args)
	if err != nil {
		return err
	}

	var name string
	if len(args) > 1 {
		name = strings.Join(args[1:], " ")
	} else if name, err = a.prompt.Text(ctx, "New name"); err != nil {
		return err
	}

	if err := a.users.Rename(ctx, id, name); err != nil {
		return err
	}

	if a.current != nil && a.current.ID == id {
		a.current.Name = name
	}
	fmt.Fprintln(a.out, "User updated.")
	return nil
}

// Delete removes a user. Deleting the logged-in user ends the session.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.idArg(ctx, args)
	if err != nil {
		return err
	}

	if err := a.users.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "User removed.")
	if a.current != nil && a.current.ID == id {
		a.current = nil
		fmt.Fprintln(a.out, "Your account was removed; logged out.")
	}
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	if a.current == nil {
		return errNeedLogin
	}

	u, err := a.users.Get(ctx, a.current.ID)
	if err != nil {
		return err
	}
	a.current = &u
	fmt.Fprintln(a.out, u.String())
	return nil
}

func (a *App) Backup(ctx context.Context, args []string) error {
	var dst string
	if len(args) > 0 {
		dst = args[0]
	} else {
		var err error
		if dst, err = a.prompt.Text(ctx, "Backup file"); err != nil {
			return err
		}
	}
	if dst == "" {
		return fmt.Errorf("backup path is required")
	}

	if err := a.users.Backup(ctx, dst); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Users backed up to %s.\n", dst)
	return nil
}

func (a *App) idArg(ctx context.Context, args []string) (int, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = a.prompt.Text(ctx, "User ID"); err != nil {
			return 0, err
		}
	}
	return parseID(raw)
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return id, nil
}
