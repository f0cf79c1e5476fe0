package util

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/argon2"
)

const (
	passwordSaltLen = 16
	passwordHashLen = 32
	argonTime       = 1
	argonMemoryKiB  = 64 * 1024
	argonThreads    = 4
)

// DerivePassword hashes a password with a fresh random salt.
func DerivePassword(password string) (hash, salt []byte, err error) {
	if password == "" {
		return nil, nil, errors.New("password cannot be empty")
	}
	salt = make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	hash = argon2.IDKey([]byte(password), salt, argonTime, argonMemoryKiB, argonThreads, passwordHashLen)
	return hash, salt, nil
}

// VerifyPassword reports whether password matches the stored hash/salt
// pair. Comparison is constant-time.
func VerifyPassword(password string, salt, expectedHash []byte) bool {
	if password == "" || len(salt) == 0 || len(expectedHash) == 0 {
		return false
	}
	candidate := argon2.IDKey([]byte(password), salt, argonTime, argonMemoryKiB, argonThreads, passwordHashLen)
	return subtle.ConstantTimeCompare(candidate, expectedHash) == 1
}
