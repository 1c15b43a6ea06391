// Package hash provides one-way password hashing and verification.
package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

type HashService struct {
	cost int
}

func NewHashService() *HashService {
	return &HashService{
		cost: bcrypt.DefaultCost,
	}
}

func (hs *HashService) HashPassword(password string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hs.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}
	return hashed, nil
}

// CheckPassword reports whether password matches the stored hash. It is
// deliberately a plain boolean so callers cannot distinguish a missing
// user from a wrong password.
func (hs *HashService) CheckPassword(password string, hashed []byte) bool {
	return bcrypt.CompareHashAndPassword(hashed, []byte(password)) == nil
}
