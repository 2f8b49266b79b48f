package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/models"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type userView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// printUsers writes the public part of each record. Digests are never printed.
func printUsers(w io.Writer, list []models.User, format string) error {
	switch format {
	case outputJSON:
		views := make([]userView, 0, len(list))
		for _, u := range list {
			views = append(views, userView{ID: u.ID, Name: u.Name, Email: u.Email})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)

	case outputText, "":
		if len(list) == 0 {
			_, err := fmt.Fprintln(w, "No users registered.")
			return err
		}
		for _, u := range list {
			if _, err := fmt.Fprintln(w, u.String()); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
