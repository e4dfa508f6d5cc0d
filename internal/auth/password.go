// Package auth holds the password hashing scheme used for site accounts.
package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/cases"

	"vidar/internal/model"
)

// PBKDF2 parameters. Changing any of them invalidates every stored hash.
const (
	Iterations = 1000
	KeyLength  = 64
	SaltBytes  = 16
)

// HashPassword derives a hash for password with a fresh random salt.
// Both values are hex encoded; the hex salt string itself is the KDF salt.
func HashPassword(password string) (hash, salt string, err error) {
	buf := make([]byte, SaltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = hex.EncodeToString(buf)
	return derive(password, salt), salt, nil
}

// VerifyPassword recomputes the hash with the stored salt and compares it in constant time.
func VerifyPassword(password, hash, salt string) bool {
	got := derive(password, salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(hash)) == 1
}

func derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha512.New)
	return hex.EncodeToString(key)
}

// RoleFor derives the role of a new account from its username:
// any username containing "admin" in any letter case is an administrator.
func RoleFor(username string) string {
	if strings.Contains(cases.Fold().String(username), "admin") {
		return model.RoleAdmin
	}
	return model.RoleUser
}
