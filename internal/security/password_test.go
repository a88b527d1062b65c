package security_test

import (
	"testing"

	"github.com/ironhall/gymhub/internal/security"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := security.HashPassword("pw1")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "pw1" {
		t.Fatalf("hash must not equal the plaintext password")
	}

	if hash == "" {
		t.Fatalf("hash must not be empty")
	}
}

func TestCheckPasswordRoundTrip(t *testing.T) {
	hash, err := security.HashPassword("correct horse battery staple")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if err := security.CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}

	if err := security.CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("expected mismatching password to fail")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := security.HashPassword("pw1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	b, err := security.HashPassword("pw1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	// bcrypt embeds a fresh salt per call
	if a == b {
		t.Fatalf("two hashes of the same password should differ")
	}
}
