// Package passhash provides salted one-way password hashing for user
// credentials, backed by bcrypt.
//
// Every call to Hash generates a fresh random salt, so hashing the same
// plaintext twice produces different blobs. The salt is embedded in the
// blob itself, so verification needs no separate salt storage. Verify is
// fail-closed: any malformed, truncated, or foreign-format blob yields
// false rather than an error or panic.
package passhash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher derives and verifies password hashes. Abstracting the algorithm
// behind an interface keeps the auth service testable without real key
// stretching on every test run.
type Hasher interface {
	// Hash generates a salted hash blob from a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether plaintext matches the stored blob.
	// Malformed blobs verify as false (fail closed).
	Verify(password, blob string) bool
}

// BcryptHasher implements [Hasher] using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a [BcryptHasher] with the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a bcrypt blob from password. A fresh random salt is generated
// on every call, so repeated calls on identical input produce distinct blobs.
//
// Returns an error only when bcrypt itself fails (e.g. the password exceeds
// bcrypt's 72-byte input limit).
func (h *BcryptHasher) Hash(password string) (string, error) {
	blob, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(blob), nil
}

// Verify recomputes the hash over the salt embedded in blob and compares it
// against the stored digest. bcrypt performs the comparison in constant time.
//
// Any error — wrong password, truncated blob, foreign hash format — is
// reported as false. The caller never has to distinguish "mismatch" from
// "unparseable": both deny access.
func (h *BcryptHasher) Verify(password, blob string) bool {
	return bcrypt.CompareHashAndPassword([]byte(blob), []byte(password)) == nil
}
