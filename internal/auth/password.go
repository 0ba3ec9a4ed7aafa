package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used for newly generated admin token hashes.
const DefaultBcryptCost = 12

var ErrInvalidToken = errors.New("invalid admin token")

// HashAdminToken creates the bcrypt hash stored in ADMIN_TOKEN_HASH.
func HashAdminToken(token string, cost int) (string, error) {
	// bcrypt has a 72-byte limit
	if len(token) > 72 {
		return "", errors.New("token exceeds maximum length of 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckAdminToken compares a presented token with the configured hash.
func CheckAdminToken(token, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// GenerateAdminToken creates a random token and its bcrypt hash.
// The plaintext is shown once; only the hash is configured.
func GenerateAdminToken(cost int) (plaintext string, hash string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", err
	}
	plaintext = hex.EncodeToString(bytes)
	hash, err = HashAdminToken(plaintext, cost)
	if err != nil {
		return "", "", err
	}
	return plaintext, hash, nil
}

// fingerprint is a SHA-256 digest used to remember tokens that already
// passed the bcrypt check.
func fingerprint(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
