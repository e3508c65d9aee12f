// Package auth provides the password hashing adapter.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"eventhub/internal/domain"
)

// DefaultCost is the bcrypt work factor used when none is given.
const DefaultCost = bcrypt.DefaultCost

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a domain.PasswordHasher backed by bcrypt. A
// non-positive cost falls back to DefaultCost.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *bcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
