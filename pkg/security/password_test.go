package security

import (
	"testing"

	"github.com/bookhaven/bookhaven-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	// low-cost params so the test suite stays fast
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword("bookworm-secret", testPasswordConfig())
	if err != nil {
		t.Fatalf("unexpected hash error: %v", err)
	}

	ok, err := VerifyPassword("bookworm-secret", encoded)
	if err != nil {
		t.Fatalf("unexpected verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}

	ok, err = VerifyPassword("wrong-password", encoded)
	if err != nil {
		t.Fatalf("unexpected verify error: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch to fail verification")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword("", testPasswordConfig()); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	if _, err := VerifyPassword("whatever", "$not$a$hash"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}
