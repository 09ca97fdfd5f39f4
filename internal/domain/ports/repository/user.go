package repository

import (
	"context"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	// FindByIdentifier resolves an email or username (already lowercased).
	FindByIdentifier(ctx context.Context, tx Tx, identifier string) (*model.User, error)
	ExistsByEmailOrUsername(ctx context.Context, tx Tx, email, username string) (bool, error)
	SetPro(ctx context.Context, tx Tx, id string, pro bool) error

	// ConsumeCredit atomically decrements the balance by one iff it is
	// positive, returning the remaining balance. Reports
	// domain.ErrInsufficientCredits when the balance is already zero and
	// domain.ErrNotFound when no such user exists. The decrement and the
	// balance check are a single conditional update; callers never observe
	// a negative balance.
	ConsumeCredit(ctx context.Context, tx Tx, id string) (remaining int, err error)

	// GrantCredits atomically adds amount (>0) to both the spendable
	// balance and the lifetime purchased total, returning the new balance.
	GrantCredits(ctx context.Context, tx Tx, id string, amount int) (balance int, err error)
}
