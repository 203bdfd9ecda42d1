package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrAuthentication is returned by Unwrap when the ciphertext does not
// authenticate under the given key and associated data: wrong key, tampered
// or truncated input.
var ErrAuthentication = errors.New("cryptox: message authentication failed")

// Associated data labels. Binding the purpose into the tag keeps a ciphertext
// from one column from opening as another.
var (
	AADUserKey = []byte("onepass/user-key")
	AADTitle   = []byte("onepass/vault/title")
	AADURL     = []byte("onepass/vault/url")
	AADUser    = []byte("onepass/vault/username")
	AADSecret  = []byte("onepass/vault/password")
)

// Wrap encrypts plaintext under key with XChaCha20-Poly1305.
// Output layout: nonce(24) || ciphertext || tag(16).
func Wrap(key, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: %w", err)
	}

	out := make([]byte, chacha20poly1305.NonceSizeX, chacha20poly1305.NonceSizeX+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(out); err != nil {
		return nil, fmt.Errorf("cryptox: nonce: %w", err)
	}

	return aead.Seal(out, out[:chacha20poly1305.NonceSizeX], plaintext, aad), nil
}

// Unwrap reverses Wrap. Any authentication problem is reported as
// ErrAuthentication; a key of the wrong size is a programming error and is
// reported as is.
func Unwrap(key, ciphertext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: %w", err)
	}

	if len(ciphertext) < chacha20poly1305.NonceSizeX+aead.Overhead() {
		return nil, ErrAuthentication
	}

	nonce, body := ciphertext[:chacha20poly1305.NonceSizeX], ciphertext[chacha20poly1305.NonceSizeX:]

	plaintext, err := aead.Open(nil, nonce, body, aad)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

// WrapOptional encrypts *value, or returns nil when value is nil.
// Absent stays absent: nothing is ever encrypted to a sentinel.
func WrapOptional(key []byte, value *string, aad []byte) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	return Wrap(key, []byte(*value), aad)
}

// UnwrapOptional decrypts ciphertext into a string, or returns nil when
// ciphertext is nil.
func UnwrapOptional(key, ciphertext, aad []byte) (*string, error) {
	if ciphertext == nil {
		return nil, nil
	}
	plaintext, err := Unwrap(key, ciphertext, aad)
	if err != nil {
		return nil, err
	}
	s := string(plaintext)
	return &s, nil
}
