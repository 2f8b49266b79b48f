// Package services contains the user registry's record store: registration,
// authentication, listing, renaming and deletion over the in-memory
// collection, with a full save after every change.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/common"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/cryptox"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/logging"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/models"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/repositories/users"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/validation"
)

// UserService is the surface the shell uses.
//
// Contract:
//   - Register: validate, hash, assign the next id, persist; returns the id.
//   - List: all records in insertion order, no side effects.
//   - Get: one record by id, common.ErrNotFound if absent.
//   - Rename: change only the name, persist.
//   - Delete: remove the record, persist.
//   - Authenticate: the record matching email and password, or
//     common.ErrAuthentication.
//   - Backup: copy the backing file elsewhere.
type UserService interface {
	Register(ctx context.Context, name, email string, password []byte) (int, error)
	List(ctx context.Context) []models.User
	Get(ctx context.Context, id int) (models.User, error)
	Rename(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
	Authenticate(ctx context.Context, email string, password []byte) (models.User, error)
	Backup(ctx context.Context, dst string) error
}

var _ UserService = (*UserStore)(nil)

// UserStore owns the user collection for the lifetime of the process.
// It is not safe for concurrent use.
type UserStore struct {
	repo   users.Repository
	hasher cryptox.Hasher
	log    logging.Logger

	users []models.User
}

// NewUserStore loads the collection from repo once and returns a store
// bound to it.
func NewUserStore(ctx context.Context, repo users.Repository, hasher cryptox.Hasher, log logging.Logger) (*UserStore, error) {
	list, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	log.Debug(ctx, "users loaded", "count", len(list))

	return &UserStore{repo: repo, hasher: hasher, log: log, users: list}, nil
}

// ErrIDsExhausted is returned by Register when the largest id in use is
// math.MaxInt.
var ErrIDsExhausted = errors.New("no user id left to assign")

// nextID is max(id)+1, or 1 when the collection is empty.
func (s *UserStore) nextID() (int, error) {
	next := 1
	for _, u := range s.users {
		if u.ID == math.MaxInt {
			return 0, ErrIDsExhausted
		}
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	return next, nil
}

func (s *UserStore) indexOf(id int) int {
	return slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == id })
}

func (s *UserStore) emailTaken(email string) bool {
	return slices.ContainsFunc(s.users, func(u models.User) bool { return u.Email == email })
}

// commit persists next and, only if that succeeds, makes it the current
// collection.
func (s *UserStore) commit(ctx context.Context, next []models.User) error {
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error(ctx, "save failed", "error", err)
		return err
	}
	s.users = next
	return nil
}

func (s *UserStore) reject(ctx context.Context, op string, reason common.ValidationReason) error {
	s.log.Warn(ctx, "input rejected", "op", op, "reason", string(reason))
	return &common.ValidationError{Reason: reason}
}

func (s *UserStore) Register(ctx context.Context, name, email string, password []byte) (int, error) {
	if !validation.IsValidEmail(email) {
		return 0, s.reject(ctx, "register", common.ReasonInvalidEmail)
	}
	if s.emailTaken(email) {
		return 0, s.reject(ctx, "register", common.ReasonDuplicateEmail)
	}
	if strings.TrimSpace(name) == "" {
		return 0, s.reject(ctx, "register", common.ReasonEmptyName)
	}
	if len(password) == 0 {
		return 0, s.reject(ctx, "register", common.ReasonEmptyPassword)
	}

	id, err := s.nextID()
	if err != nil {
		return 0, err
	}

	digest, err := s.hasher.Digest(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{ID: id, Name: name, Email: email, PasswordDigest: digest}

	if err := s.commit(ctx, append(slices.Clone(s.users), u)); err != nil {
		return 0, err
	}

	s.log.Info(ctx, "user registered", "id", u.ID)
	return u.ID, nil
}

func (s *UserStore) List(ctx context.Context) []models.User {
	return slices.Clone(s.users)
}

func (s *UserStore) Get(ctx context.Context, id int) (models.User, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.User{}, fmt.Errorf("id %d: %w", id, common.ErrNotFound)
	}
	return s.users[i], nil
}

func (s *UserStore) Rename(ctx context.Context, id int, name string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("id %d: %w", id, common.ErrNotFound)
	}
	if strings.TrimSpace(name) == "" {
		return s.reject(ctx, "rename", common.ReasonEmptyName)
	}

	next := slices.Clone(s.users)
	next[i].Name = name

	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.Info(ctx, "user renamed", "id", id)
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("id %d: %w", id, common.ErrNotFound)
	}

	next := slices.Delete(slices.Clone(s.users), i, i+1)

	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.Info(ctx, "user deleted", "id", id)
	return nil
}

// Authenticate looks for a record with this email whose digest verifies
// against password. The error does not reveal which of the two was wrong.
func (s *UserStore) Authenticate(ctx context.Context, email string, password []byte) (models.User, error) {
	for _, u := range s.users {
		if u.Email == email && s.hasher.Verify(password, u.PasswordDigest) {
			s.log.Info(ctx, "login succeeded", "id", u.ID)
			return u, nil
		}
	}

	s.log.Warn(ctx, "login failed")
	return models.User{}, common.ErrAuthentication
}

func (s *UserStore) Backup(ctx context.Context, dst string) error {
	if err := s.repo.Backup(ctx, dst); err != nil {
		return err
	}
	s.log.Info(ctx, "users backed up", "dst", dst)
	return nil
}
