// Package cli provides the user registry's command-line front end.
//
// Two ways in:
//   - An interactive shell (App.Run) with a main menu (register, login)
//     and, once logged in, a user menu (list, rename, delete, whoami,
//     backup, logout).
//   - One-shot cobra subcommands (register, login, list, rename, delete,
//     backup) for scripts.
//
// Both call into services.UserService; this package only prompts, parses
// arguments and prints results.
package cli
