package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(openTestDB(t)))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func stringPtr(s string) *string { return &s }

func TestFAQCrudFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateFAQ(ctx, CreateFAQInput{
		Question: "  Do you ship islandwide?  ",
		Answer:   "Yes, delivery takes 3-5 working days.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected server-assigned id")
	}
	if created.Question != "Do you ship islandwide?" {
		t.Fatalf("expected trimmed question, got %q", created.Question)
	}

	updated, err := svc.UpdateFAQ(ctx, created.ID, UpdateFAQInput{
		Answer: stringPtr("Yes, 2-3 working days."),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Question != created.Question {
		t.Fatalf("expected question untouched on partial update, got %q", updated.Question)
	}
	if updated.Answer != "Yes, 2-3 working days." {
		t.Fatalf("expected new answer, got %q", updated.Answer)
	}

	faqs, err := svc.ListFAQs(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(faqs) != 1 {
		t.Fatalf("expected one faq, got %d", len(faqs))
	}

	if err := svc.DeleteFAQ(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = svc.DeleteFAQ(ctx, created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestFAQValidationAndMissing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFAQ(ctx, CreateFAQInput{Question: " ", Answer: "a"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.UpdateFAQ(ctx, uuid.New(), UpdateFAQInput{Answer: stringPtr("a")})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func TestAnnouncementCrudFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateAnnouncement(ctx, CreateAnnouncementInput{
		Title:   "Holiday sale",
		Content: "20% off all fiction this week.",
		Date:    time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	second, err := svc.CreateAnnouncement(ctx, CreateAnnouncementInput{
		Title:   "New arrivals",
		Content: "Fresh titles in the productivity shelf.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if second.Date.IsZero() {
		t.Fatal("expected server-assigned date")
	}

	msgs, err := svc.ListAnnouncements(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected two announcements, got %d", len(msgs))
	}
	if msgs[0].ID != second.ID {
		t.Fatalf("expected newest display date first, got %s", msgs[0].Title)
	}

	updated, err := svc.UpdateAnnouncement(ctx, first.ID, UpdateAnnouncementInput{
		Title: stringPtr("Extended holiday sale"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != first.Content {
		t.Fatalf("expected content untouched on partial update")
	}

	if err := svc.DeleteAnnouncement(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = svc.DeleteAnnouncement(ctx, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}
