package migrate

import (
	"context"
	"io"
	"testing"

	"github.com/bookhaven/bookhaven-backend/pkg/config"
	"github.com/bookhaven/bookhaven-backend/pkg/db"
	"github.com/bookhaven/bookhaven-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test-migrate", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func openSQLiteClient(t *testing.T) *db.Client {
	t.Helper()
	client, err := db.New(context.Background(), config.DBConfig{Driver: "sqlite", DSN: ":memory:"}, nil)
	if err != nil {
		t.Fatalf("open sqlite client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestMaybeRunDevBuildsSQLiteSchema(t *testing.T) {
	client := openSQLiteClient(t)
	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev},
		DB:  config.DBConfig{Driver: "sqlite", DSN: ":memory:"},
		FeatureFlags: config.FeatureFlagsConfig{
			AutoMigrate: true,
			UseSQLite:   true,
		},
	}

	if err := MaybeRunDev(context.Background(), cfg, testLogger(), client); err != nil {
		t.Fatalf("maybe run dev: %v", err)
	}

	migrator := client.DB().Migrator()
	for _, table := range []string{"books", "orders", "faqs", "announcements", "articles", "contacts", "reviews", "users"} {
		if !migrator.HasTable(table) {
			t.Fatalf("expected table %q after sqlite auto-migration", table)
		}
	}
}

func TestMaybeRunDevSkipsOutsideDev(t *testing.T) {
	client := openSQLiteClient(t)
	cfg := &config.Config{
		App:          config.AppConfig{Env: config.AppEnvProd},
		DB:           config.DBConfig{Driver: "sqlite", DSN: ":memory:"},
		FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: true},
	}

	if err := MaybeRunDev(context.Background(), cfg, testLogger(), client); err != nil {
		t.Fatalf("maybe run dev: %v", err)
	}
	if client.DB().Migrator().HasTable("books") {
		t.Fatal("expected no schema outside dev mode")
	}
}

func TestRunRejectsNonPostgresDrivers(t *testing.T) {
	client := openSQLiteClient(t)
	sqlDB, err := client.DB().DB()
	if err != nil {
		t.Fatalf("extract sql db: %v", err)
	}

	if err := Run(context.Background(), sqlDB, "sqlite", DefaultDir, "up"); err == nil {
		t.Fatal("expected goose run against sqlite to be refused")
	}
}
