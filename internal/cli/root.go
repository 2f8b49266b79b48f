package cli

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/config"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/cryptox"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/logging"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/repositories/users"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/services"
)

// getenv is a test seam for os.Getenv.
var getenv = os.Getenv

// env carries what PersistentPreRunE builds for the subcommands.
type env struct {
	flags *config.Flags
	log   logging.Logger
	users services.UserService
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := e.flags.Resolve(getenv)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	hasher, err := cryptox.NewHasher(cfg.HashScheme)
	if err != nil {
		return err
	}

	store, err := services.NewUserStore(cmd.Context(), users.NewJSONFileRepository(cfg.DataFile), hasher, log)
	if err != nil {
		return err
	}

	e.log, e.users = log, store
	return nil
}

// NewRootCmd creates the root command. Without a subcommand it starts the
// interactive shell.
func NewRootCmd() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "usercrud",
		Short: "Register, authenticate and manage users stored in a JSON file",
		Long: `usercrud keeps a list of users in a single JSON file.

Run it without arguments for the interactive shell, or use the subcommands
for one-shot operations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsStore(cmd) {
				return nil
			}
			return e.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, e)
		},
		SilenceUsage: true,
	}

	e.flags = config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newShellCmd(e))
	rootCmd.AddCommand(newRegisterCmd(e))
	rootCmd.AddCommand(newLoginCmd(e))
	rootCmd.AddCommand(newListCmd(e))
	rootCmd.AddCommand(newRenameCmd(e))
	rootCmd.AddCommand(newDeleteCmd(e))
	rootCmd.AddCommand(newBackupCmd(e))

	return rootCmd
}

// ExitInterrupted is the exit code after ctx is cancelled, as a shell reports
// a SIGINT.
const ExitInterrupted = 130

// needsStore reports whether cmd works on the user file. cobra's own help and
// completion commands do not, so they run even when the file is unreadable.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	return exitCode(NewRootCmd().ExecuteContext(ctx))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return 1
	}
}

func runShell(cmd *cobra.Command, e *env) error {
	log := e.log.With("session", uuid.NewString())
	app := NewApp(e.users, log, cmd.InOrStdin(), cmd.OutOrStdout())
	return app.Run(cmd.Context())
}

func newShellCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, e)
		},
	}
}
