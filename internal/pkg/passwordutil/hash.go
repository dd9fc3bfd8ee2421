package passwordutil

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only consumes the first 72 bytes of input; longer candidates are
// truncated so Hash and Verify agree on what was hashed.
const maxBcryptInput = 72

// Hash derives a salted bcrypt hash from a plaintext password. The salt is
// random per call, so hashing the same input twice yields different outputs.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext is the password that produced hash.
// A malformed hash fails closed and reports false.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plaintext)) == nil
}

func bcryptInput(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxBcryptInput {
		b = b[:maxBcryptInput]
	}
	return b
}
