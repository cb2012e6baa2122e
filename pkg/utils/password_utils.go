package utils

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the fixed bcrypt work factor.
const PasswordHashCost = 12

// HashPassword returns the salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash. Malformed hashes report false.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	unknownHashOnce sync.Once
	unknownHash     string
)

// UnknownUserHash returns a fixed hash of PasswordHashCost to compare against
// when no account matches, so the lookup costs the same as a wrong password.
func UnknownUserHash() string {
	unknownHashOnce.Do(func() {
		hashed, err := bcrypt.GenerateFromPassword([]byte("unknown-user"), PasswordHashCost)
		if err != nil {
			panic(fmt.Sprintf("failed to build unknown user hash: %v", err))
		}
		unknownHash = string(hashed)
	})
	return unknownHash
}
