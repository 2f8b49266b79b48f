package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/common"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/filex"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/models"
)

var (
	// ErrMalformed marks a data file that parsed but breaks a record invariant.
	ErrMalformed = errors.New("malformed user file")
	// ErrSameFile is returned by Backup when the destination is the data file.
	ErrSameFile = errors.New("backup destination is the data file")
)

const indent = "    "

// JSONFileRepository stores users as a pretty-printed JSON array in one file.
type JSONFileRepository struct {
	path string
}

func NewJSONFileRepository(path string) *JSONFileRepository {
	return &JSONFileRepository{path: path}
}

// Path returns the backing file location.
func (r *JSONFileRepository) Path() string {
	return r.path
}

func (r *JSONFileRepository) storageErr(op string, err error) error {
	return &common.StorageError{Op: op, Path: r.path, Err: err}
}

func (r *JSONFileRepository) Load(ctx context.Context) ([]models.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.User{}, nil
		}
		return nil, r.storageErr("load", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.User{}, nil
	}

	var list []models.User
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, r.storageErr("load", err)
	}
	if list == nil {
		list = []models.User{}
	}

	if err := checkInvariants(list); err != nil {
		return nil, r.storageErr("load", err)
	}

	return list, nil
}

func checkInvariants(list []models.User) error {
	ids := make(map[int]struct{}, len(list))
	emails := make(map[string]struct{}, len(list))

	for _, u := range list {
		if u.ID <= 0 {
			return fmt.Errorf("%w: non-positive id %d", ErrMalformed, u.ID)
		}
		if _, ok := ids[u.ID]; ok {
			return fmt.Errorf("%w: duplicate id %d", ErrMalformed, u.ID)
		}
		if _, ok := emails[u.Email]; ok {
			return fmt.Errorf("%w: duplicate email %q", ErrMalformed, u.Email)
		}
		ids[u.ID] = struct{}{}
		emails[u.Email] = struct{}{}
	}
	return nil
}

// Save writes users to a temporary file next to the target and renames it
// into place, so readers never see a half-written document.
func (r *JSONFileRepository) Save(ctx context.Context, list []models.User) error {
	if list == nil {
		list = []models.User{}
	}

	data, err := json.MarshalIndent(list, "", indent)
	if err != nil {
		return r.storageErr("save", err)
	}
	data = append(data, '\n')

	err = writeAtomic(r.path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return r.storageErr("save", err)
	}
	return nil
}

// writeAtomic fills a temporary file through write and renames it over path.
// A symlinked path is followed, so the link itself survives. The target keeps
// its permission bits; a new file gets 0600. On any failure path is untouched
// and the temporary file is removed.
func writeAtomic(path string, write func(io.Writer) error) error {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	perm := os.FileMode(0o600)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	dir, err := filex.EnsureParentDir(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	err = write(tmp)
	if err == nil {
		err = tmp.Chmod(perm)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, target)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Backup copies the backing file to dst. It returns common.ErrNotFound when
// nothing has been saved yet, and ErrSameFile when dst is the backing file
// itself (directly or through a link).
func (r *JSONFileRepository) Backup(ctx context.Context, dst string) error {
	src, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("backup %s: %w", r.path, common.ErrNotFound)
		}
		return r.storageErr("backup", err)
	}
	defer src.Close()

	srcInfo, err := src.Stat()
	if err != nil {
		return r.storageErr("backup", err)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return r.storageErr("backup", fmt.Errorf("%w: %s", ErrSameFile, dst))
	}

	err = writeAtomic(dst, func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	})
	if err != nil {
		return r.storageErr("backup", err)
	}
	return nil
}
