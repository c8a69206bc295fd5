// Package auth provides the credential hasher and the session token manager.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// DefaultCost matches the cost used for every stored account hash.
const DefaultCost = 10

// Hasher hashes passwords with bcrypt. The salt is embedded in the hash.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher. Costs outside bcrypt's range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrHashFailed, err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash.
func (h *Hasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
