package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CanonicalCode folds a withdrawal code to its comparable form: whitespace
// trimmed, upper-cased.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// HashCode bcrypt-hashes the canonical form so no plaintext code literal
// lives past configuration load.
func HashCode(code string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(CanonicalCode(code)), bcrypt.DefaultCost)
	return string(b), err
}

func VerifyCode(code, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(CanonicalCode(code)))
}
