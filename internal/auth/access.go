package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrWeakAccessCode    = errors.New("access code must be at least 6 characters")
	ErrWrongAnswer       = errors.New("incorrect answer")
)

// ValidateAccessCode checks if the access code meets minimum requirements.
func ValidateAccessCode(code string) error {
	if len(code) < 6 {
		return ErrWeakAccessCode
	}
	return nil
}

// HashAccessCode hashes a trip access code with bcrypt. Codes are stored
// hashed only, so they cannot be echoed back; the recovery flow issues a
// trip token instead of revealing the code.
func HashAccessCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(normalize(code)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash access code: %w", err)
	}
	return string(hash), nil
}

// VerifyAccessCode compares a candidate code against the stored hash.
func VerifyAccessCode(hash, code string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(normalize(code))); err != nil {
		return ErrInvalidAccessCode
	}
	return nil
}

// NormalizeAnswer prepares a recovery or security answer for storage:
// lowercased and trimmed, for case-insensitive matching.
func NormalizeAnswer(answer string) string {
	return normalize(answer)
}

// VerifyAnswer compares a candidate answer against the stored (normalized)
// one. An empty stored answer means the check is not configured and always
// passes.
func VerifyAnswer(stored, answer string) error {
	if stored == "" {
		return nil
	}
	if normalize(answer) != stored {
		return ErrWrongAnswer
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
