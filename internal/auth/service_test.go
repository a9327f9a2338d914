package auth

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkgauth "github.com/bookhaven/bookhaven-backend/pkg/auth"
	"github.com/bookhaven/bookhaven-backend/pkg/config"
	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bookhaven-test",
		ExpirationMinutes: 30,
	}
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       NewRepository(openTestDB(t)),
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{},
		AdminConfig: config.AdminConfig{
			Email:    "Admin@BookHaven.lk",
			Password: "secret-password",
			Name:     "Store Admin",
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestEnsureAdminAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	// second run is a no-op
	if err := svc.EnsureAdmin(ctx); err != nil {
		t.Fatalf("ensure admin again: %v", err)
	}

	resp, err := svc.Login(ctx, LoginRequest{
		Email:    "admin@bookhaven.lk",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if resp.User.Role != "admin" {
		t.Fatalf("expected admin role, got %s", resp.User.Role)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatal("expected token subject to match the account")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	_, err := svc.Login(ctx, LoginRequest{
		Email:    "admin@bookhaven.lk",
		Password: "wrong",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@bookhaven.lk",
		Password: "whatever",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
