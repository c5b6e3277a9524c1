package password

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	Cost      = bcrypt.DefaultCost
	MinLength = 8
	// MaxBytes is the bcrypt input limit.
	MaxBytes = 72
)

var (
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrInvalidPassword = errors.New("invalid password")
	ErrWeakPassword    = fmt.Errorf("password must be at least %d characters and contain a letter and a digit", MinLength)
	ErrTooLong         = fmt.Errorf("password must not exceed %d bytes", MaxBytes)
)

func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrInvalidPassword when password does not match hash.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}

	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}

// CheckStrength enforces the account password policy for residents and staff.
func CheckStrength(password string) error {
	if len(password) > MaxBytes {
		return ErrTooLong
	}

	if utf8.RuneCountInString(password) < MinLength {
		return ErrWeakPassword
	}

	var letter, digit bool

	for _, r := range password {
		letter = letter || unicode.IsLetter(r)
		digit = digit || unicode.IsDigit(r)
	}

	if !letter || !digit {
		return ErrWeakPassword
	}

	return nil
}

// NeedsRehash reports whether hash was made with a lower cost than Cost, or is not a bcrypt hash.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))

	return err != nil || cost < Cost
}
