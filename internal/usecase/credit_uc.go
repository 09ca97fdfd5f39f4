// File: internal/usecase/credit_uc.go
package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/logging"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/metrics"
)

// Compile-time check
var _ CreditLedgerUseCase = (*creditLedgerUC)(nil)

// CreditLedgerUseCase is the only path through which a user's spendable
// balance changes. Both operations are atomic with respect to concurrent
// calls for the same user; the repository performs the check and the
// mutation as one conditional statement.
type CreditLedgerUseCase interface {
	// Consume spends exactly one credit, returning the remaining balance.
	// Fails with domain.ErrInsufficientCredits when the balance is zero.
	Consume(ctx context.Context, userID string) (remaining int, err error)
	// Grant adds amount to both the balance and the lifetime purchased
	// total. Fails with domain.ErrInvalidArgument when amount <= 0.
	Grant(ctx context.Context, userID string, amount int) (balance int, err error)
}

type creditLedgerUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewCreditLedgerUseCase(users repository.UserRepository, logger *zerolog.Logger) *creditLedgerUC {
	return &creditLedgerUC{users: users, log: logger}
}

func (c *creditLedgerUC) Consume(ctx context.Context, userID string) (int, error) {
	defer logging.TraceDuration(c.log, "CreditLedgerUC.Consume")()

	remaining, err := c.users.ConsumeCredit(ctx, repository.NoTX, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientCredits) {
			metrics.ObserveCreditDenied()
		}
		return 0, err
	}
	metrics.ObserveCreditConsumed()
	c.log.Debug().Str("user_id", userID).Int("remaining", remaining).Msg("credit consumed")
	return remaining, nil
}

func (c *creditLedgerUC) Grant(ctx context.Context, userID string, amount int) (int, error) {
	defer logging.TraceDuration(c.log, "CreditLedgerUC.Grant")()

	if amount <= 0 {
		return 0, domain.ErrInvalidArgument
	}
	balance, err := c.users.GrantCredits(ctx, repository.NoTX, userID, amount)
	if err != nil {
		return 0, err
	}
	metrics.ObserveCreditsGranted(amount)
	c.log.Info().Str("user_id", userID).Int("amount", amount).Int("balance", balance).Msg("credits granted")
	return balance, nil
}
