package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyDigest is compared against when a login names an unknown user so the
// response time matches a real password check.
const dummyDigest = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8eC"

// HashPassword creates a bcrypt digest from the given plaintext password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided plaintext password matches the stored bcrypt digest.
func VerifyPassword(passwordDigest, providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(passwordDigest), []byte(providedPassword))
}

// BurnCompare runs a comparison that always fails.
func BurnCompare(providedPassword string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte(providedPassword))
}
