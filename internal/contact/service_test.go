package contact

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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
	if err := conn.AutoMigrate(&models.Contact{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(openTestDB(t)))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func submitTestMessage(t *testing.T, svc Service) *ContactDTO {
	t.Helper()
	msg, err := svc.Submit(context.Background(), SubmitInput{
		Name:    "John Doe",
		Email:   "john@example.com",
		Subject: "Late delivery",
		Message: "My order has not arrived yet.",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return msg
}

func TestSubmitStartsPending(t *testing.T) {
	svc := newTestService(t)

	msg := submitTestMessage(t, svc)
	if msg.Status != "PENDING" {
		t.Fatalf("expected new messages to be pending, got %s", msg.Status)
	}
	if msg.AdminReply != nil {
		t.Fatal("expected no admin reply on a fresh message")
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Submit(context.Background(), SubmitInput{
		Name: "John", Email: "not-an-email", Subject: "s", Message: "m",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for email, got %v", err)
	}
}

func TestReplyFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	msg := submitTestMessage(t, svc)

	replied, err := svc.Reply(ctx, msg.ID, "It ships tomorrow.", "admin@bookhaven.lk")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if replied.Status != "REPLIED" {
		t.Fatalf("expected replied status, got %s", replied.Status)
	}
	if replied.AdminReply == nil || *replied.AdminReply != "It ships tomorrow." {
		t.Fatalf("expected stored reply, got %v", replied.AdminReply)
	}
	if replied.RepliedAt == nil {
		t.Fatal("expected replied timestamp")
	}

	closed, err := svc.Close(ctx, msg.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != "CLOSED" {
		t.Fatalf("expected closed status, got %s", closed.Status)
	}

	_, err = svc.Reply(ctx, msg.ID, "Another reply", "admin@bookhaven.lk")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict replying to closed message, got %v", err)
	}
}

func TestListFilterByStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := submitTestMessage(t, svc)
	submitTestMessage(t, svc)

	if _, err := svc.Reply(ctx, first.ID, "Done.", "admin@bookhaven.lk"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	result, err := svc.List(ctx, ListInput{Status: "PENDING"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected one pending message, got %d", result.Total)
	}

	_, err = svc.List(ctx, ListInput{Status: "bogus"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestDeleteAndMissing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	msg := submitTestMessage(t, svc)
	if err := svc.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err := svc.Delete(ctx, msg.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = svc.Get(ctx, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
