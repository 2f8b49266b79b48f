package users

import (
	"context"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/models"
)

// Repository reads and writes the complete ordered user collection.
type Repository interface {
	// Load returns every stored record in file order. A missing file
	// yields an empty collection.
	Load(ctx context.Context) ([]models.User, error)

	// Save overwrites the stored collection with users.
	Save(ctx context.Context, users []models.User) error

	// Backup copies the stored collection to dst.
	Backup(ctx context.Context, dst string) error
}
