package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/common"
)

func newRegisterCmd(e *env) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user (password is prompted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			password, err := p.Password(cmd.Context(), "Password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			id, err := e.users.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User registered with id %d.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLoginCmd(e *env) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check a user's credentials (password is prompted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			password, err := p.Password(cmd.Context(), "Password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			u, err := e.users.Authenticate(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! (id %d)\n", u.Name, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newListCmd(e *env) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printUsers(cmd.OutOrStdout(), e.users.List(cmd.Context()), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, json")

	return cmd
}

func newRenameCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new name>",
		Short: "Change a user's name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := e.users.Rename(cmd.Context(), id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User updated.")
			return nil
		},
	}
}

func newDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a user",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := e.users.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User removed.")
			return nil
		},
	}
}

func newBackupCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <path>",
		Short: "Copy the users file to path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.users.Backup(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Users backed up to %s.\n", args[0])
			return nil
		},
	}
}
