package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/dmitrijs2005/onepass/internal/common"
)

func TestDeriveKey_KnownVectors(t *testing.T) {
	// PBKDF2-HMAC-SHA256 vectors for P="password", S="salt", dkLen=32.
	tests := []struct {
		iterations int
		want       string
	}{
		{1, "120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b"},
		{4096, "c5e478d59288c841aa530db6845c4c8d962893a001ce4e11a4963873aa98134a"},
	}

	for _, tt := range tests {
		got := DeriveKey([]byte("password"), []byte("salt"), tt.iterations)
		if hex.EncodeToString(got) != tt.want {
			t.Errorf("iterations=%d: expected %s, got %x", tt.iterations, tt.want, got)
		}
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := GenerateSalt()

	key1 := DeriveKey([]byte("correct horse"), salt, 1000)
	key2 := DeriveKey([]byte("correct horse"), salt, 1000)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != common.SecretKeySize {
		t.Errorf("expected %d-byte key, got %d", common.SecretKeySize, len(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	salt1 := GenerateSalt()
	salt2 := GenerateSalt()

	if bytes.Equal(DeriveKey([]byte("pw"), salt1, 1000), DeriveKey([]byte("pw"), salt2, 1000)) {
		t.Errorf("expected different results for different salts, got same")
	}
	if bytes.Equal(DeriveKey([]byte("pw1"), salt1, 1000), DeriveKey([]byte("pw2"), salt1, 1000)) {
		t.Errorf("expected different results for different passwords, got same")
	}
}

func TestDeriveKey_NonPositiveIterationsUseDefault(t *testing.T) {
	salt := []byte("fixed-salt")
	if !bytes.Equal(DeriveKey([]byte("pw"), salt, 0), DeriveKey([]byte("pw"), salt, DefaultIterations)) {
		t.Errorf("zero iterations must fall back to DefaultIterations")
	}
}

func TestGenerateSalt_SizeAndUniqueness(t *testing.T) {
	a, b := GenerateSalt(), GenerateSalt()
	if len(a) != SaltSize || len(b) != SaltSize {
		t.Fatalf("unexpected salt sizes: %d, %d", len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two salts are identical")
	}
}
