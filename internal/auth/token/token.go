// Package token issues and fingerprints opaque refresh tokens. Only the
// SHA-256 fingerprint is ever stored; the plain value exists once, in the
// sign-in response.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

const refreshTokenBytes = 48

// NewRefreshToken returns a fresh opaque token and its storage fingerprint.
func NewRefreshToken() (plain, fingerprint string, err error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	plain = base64.RawURLEncoding.EncodeToString(b)
	return plain, Fingerprint(plain), nil
}

// Fingerprint maps a plain token to the value stored in the database.
func Fingerprint(plain string) string {
	h := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(h[:])
}
