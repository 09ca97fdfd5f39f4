package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
)

func TestConsume_Concurrent(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	u := freeUser(5)
	if err := users.Save(ctx, nil, u); err != nil {
		t.Fatal(err)
	}
	uc := NewCreditLedgerUseCase(users, testLogger())

	const K = 32
	var wg sync.WaitGroup
	wg.Add(K)

	var mu sync.Mutex
	var success, denied, other int

	for i := 0; i < K; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.Consume(ctx, u.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, domain.ErrInsufficientCredits):
				denied++
			default:
				other++
			}
		}()
	}
	wg.Wait()

	if success != 5 {
		t.Fatalf("expected exactly 5 successful consumes, got %d (denied=%d other=%d)", success, denied, other)
	}
	if denied != K-5 {
		t.Fatalf("expected %d denials, got %d", K-5, denied)
	}
	if got := users.credits(u.ID); got != 0 {
		t.Fatalf("balance should end at 0, got %d", got)
	}
}

func TestConsume_UnknownUser(t *testing.T) {
	uc := NewCreditLedgerUseCase(newMemUserRepo(), testLogger())
	if _, err := uc.Consume(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGrant(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	u := freeUser(2)
	if err := users.Save(ctx, nil, u); err != nil {
		t.Fatal(err)
	}
	uc := NewCreditLedgerUseCase(users, testLogger())

	if _, err := uc.Grant(ctx, u.ID, 0); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero amount, got %v", err)
	}
	if _, err := uc.Grant(ctx, u.ID, -3); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative amount, got %v", err)
	}

	balance, err := uc.Grant(ctx, u.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if balance != 12 {
		t.Fatalf("expected balance 12, got %d", balance)
	}
	got, err := users.FindByID(ctx, nil, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalCreditsPurchased != 10 {
		t.Fatalf("expected lifetime total 10, got %d", got.TotalCreditsPurchased)
	}
}
