// Package cryptox holds the vault's cryptographic primitives: master-password
// key derivation and the authenticated envelope cipher used both to wrap the
// per-user secret key and to encrypt individual vault fields.
package cryptox

import (
	"crypto/sha256"

	"github.com/dmitrijs2005/onepass/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of a per-user salt in bytes.
	SaltSize = 32

	// MinIterations is the lowest PBKDF2 work factor accepted in production
	// configuration.
	MinIterations = 100_000

	// DefaultIterations is the PBKDF2 work factor used when none is configured.
	DefaultIterations = MinIterations
)

// DeriveKey stretches password with salt into a SecretKeySize key using
// PBKDF2-HMAC-SHA256. It is deterministic and never fails: whether the
// password is right is only known once the derived key opens a wrapped key.
func DeriveKey(password, salt []byte, iterations int) []byte {
	if iterations < 1 {
		iterations = DefaultIterations
	}
	return pbkdf2.Key(password, salt, iterations, common.SecretKeySize, sha256.New)
}

// GenerateSalt returns SaltSize random bytes. It is called once per user, at
// registration; salts are never derived from the username or the password.
func GenerateSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// GenerateSecretKey returns a fresh random per-user data key.
func GenerateSecretKey() []byte {
	return common.GenerateRandByteArray(common.SecretKeySize)
}
