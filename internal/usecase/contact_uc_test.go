package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
)

func TestContactSubmit(t *testing.T) {
	ctx := context.Background()
	repo := &memContactRepo{}
	uc := NewContactUseCase(repo, testLogger())

	if err := uc.Submit(ctx, "Someone@Example.com", "  please call me back  "); err != nil {
		t.Fatal(err)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 stored message, got %d", len(repo.saved))
	}
	if repo.saved[0].Email != "someone@example.com" || repo.saved[0].Message != "please call me back" {
		t.Fatalf("submission not normalized: %+v", repo.saved[0])
	}

	if err := uc.Submit(ctx, "bad-email", "hello"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for bad email, got %v", err)
	}
	if err := uc.Submit(ctx, "a@b.co", "   "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty message, got %v", err)
	}
}
