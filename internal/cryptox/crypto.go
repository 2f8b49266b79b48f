// Package cryptox turns plaintext passwords into stored digests and checks
// candidates against them.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash scheme names accepted by NewHasher.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Hasher produces and verifies password digests.
type Hasher interface {
	Digest(password []byte) (string, error)
	Verify(password []byte, digest string) bool
}

// NewHasher returns the Hasher registered under scheme.
func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case "", SchemeSHA256:
		return SHA256Hasher{}, nil
	case SchemeBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown hash scheme %q", scheme)
	}
}

// SHA256Hasher stores the lowercase hex SHA-256 of the password.
//
// It is unsalted: equal passwords give equal digests, and guessing is cheap.
// Existing data files use this format, so it stays the default.
type SHA256Hasher struct{}

// DigestLen is the length of a SHA256Hasher digest in hex characters.
const DigestLen = sha256.Size * 2

func (SHA256Hasher) Digest(password []byte) (string, error) {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(password []byte, digest string) bool {
	candidate, _ := h.Digest(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}

// BcryptHasher stores salted bcrypt hashes. Files written with it cannot be
// read back by SHA256Hasher.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Digest(password []byte) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (BcryptHasher) Verify(password []byte, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), password) == nil
}
