package repository

import (
	"context"
	"testing"
	"time"

	"servicemarket/internal/domain"
)

func TestMarkCompletedIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPaymentRepository(db)

	p := &domain.Payment{
		UserID:   1,
		IntentID: "pi_test_1",
		Amount:   50,
		Currency: "cad",
		Status:   domain.PaymentPending,
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	changed, err := repo.MarkCompletedIdempotent(ctx, "pi_test_1", time.Now().UTC())
	if err != nil {
		t.Fatalf("MarkCompletedIdempotent returned error: %v", err)
	}
	if !changed {
		t.Fatal("first delivery should flip the row")
	}

	// A replayed webhook is a no-op.
	changed, err = repo.MarkCompletedIdempotent(ctx, "pi_test_1", time.Now().UTC())
	if err != nil {
		t.Fatalf("replay returned error: %v", err)
	}
	if changed {
		t.Fatal("replay must not report a change")
	}

	// A completed payment never regresses to failed.
	changed, err = repo.MarkFailedIdempotent(ctx, "pi_test_1", time.Now().UTC())
	if err != nil {
		t.Fatalf("MarkFailedIdempotent returned error: %v", err)
	}
	if changed {
		t.Fatal("completed payment must not become failed")
	}

	got, err := repo.GetByIntentID(ctx, "pi_test_1")
	if err != nil {
		t.Fatalf("GetByIntentID returned error: %v", err)
	}
	if got.Status != domain.PaymentCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}
	if got.CompletedAt == nil {
		t.Fatal("expected completed_at to be set")
	}
	if got.FailedAt != nil {
		t.Fatal("expected failed_at to stay empty")
	}
}

func TestMarkCompletedIdempotent_UnknownIntent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)

	changed, err := repo.MarkCompletedIdempotent(context.Background(), "pi_unknown", time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Fatal("unknown intent must not report a change")
	}
}
