package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bookhaven/bookhaven-backend/pkg/config"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bookhaven-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: userID,
		Role:   enums.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %s", claims.UserID)
	}
	if claims.Role != enums.UserRoleAdmin {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
}

func TestMintRejectsInvalidRole(t *testing.T) {
	t.Parallel()

	_, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRole("superuser"),
	})
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}

	other := testJWTConfig()
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}
