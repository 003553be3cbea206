package util

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashPassword hashes a plain text password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks if a plain text password matches a hashed password
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// MinPasswordLength is enforced on registration and profile updates.
const MinPasswordLength = 6

// ValidatePassword reports whether password is acceptable for a new account.
func ValidatePassword(password string) bool {
	return len(password) >= MinPasswordLength && len(password) <= 72
}
