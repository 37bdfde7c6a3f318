package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. Deliberately slow: this guards a single admin
// login, not a high-throughput auth path.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// HashPassword derives an scrypt hash with a fresh random salt. The
// stored form is "hex(key).hex(salt)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// ComparePassword reports whether supplied matches the stored
// "hex(key).hex(salt)" hash, in constant time.
func ComparePassword(supplied, stored string) (bool, error) {
	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		return false, errors.New("malformed password hash")
	}

	key, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, fmt.Errorf("malformed password hash: %w", err)
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, fmt.Errorf("malformed password hash: %w", err)
	}

	suppliedKey, err := scrypt.Key([]byte(supplied), salt, scryptN, scryptR, scryptP, len(key))
	if err != nil {
		return false, fmt.Errorf("failed to derive key: %w", err)
	}

	return subtle.ConstantTimeCompare(key, suppliedKey) == 1, nil
}
