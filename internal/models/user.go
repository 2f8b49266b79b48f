// Package models holds the records persisted by the user registry.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrIncompleteRecord is returned when a stored record lacks a required key.
var ErrIncompleteRecord = errors.New("incomplete user record")

// User is a registered account.
//
// The JSON keys are the ones used by existing data files: id, nome, email,
// senha. Decoding also accepts name and password_digest.
type User struct {
	ID             int    `json:"id"`
	Name           string `json:"nome"`
	Email          string `json:"email"`
	PasswordDigest string `json:"senha"`
}

type userJSON struct {
	ID             *int    `json:"id"`
	Nome           *string `json:"nome"`
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Senha          *string `json:"senha"`
	PasswordDigest *string `json:"password_digest"`
}

// UnmarshalJSON decodes a record and fails if any attribute is missing.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw userJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	name := firstSet(raw.Nome, raw.Name)
	digest := firstSet(raw.Senha, raw.PasswordDigest)

	switch {
	case raw.ID == nil:
		return fmt.Errorf("%w: missing id", ErrIncompleteRecord)
	case name == nil:
		return fmt.Errorf("%w: id %d: missing name", ErrIncompleteRecord, *raw.ID)
	case raw.Email == nil:
		return fmt.Errorf("%w: id %d: missing email", ErrIncompleteRecord, *raw.ID)
	case digest == nil:
		return fmt.Errorf("%w: id %d: missing password digest", ErrIncompleteRecord, *raw.ID)
	}

	*u = User{ID: *raw.ID, Name: *name, Email: *raw.Email, PasswordDigest: *digest}
	return nil
}

func firstSet(vals ...*string) *string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// String renders the public part of the record; the digest is left out.
func (u User) String() string {
	return fmt.Sprintf("ID: %d | Name: %s | Email: %s", u.ID, u.Name, u.Email)
}
