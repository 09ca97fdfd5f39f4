package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, name, email, username, password_hash, credits, total_credits_purchased, is_pro, created_at, updated_at`

func (r *UserRepo) Save(ctx context.Context, qx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (id, name, email, username, password_hash, credits, total_credits_purchased, is_pro, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
ON CONFLICT (id) DO UPDATE SET
  name=$2, email=$3, username=$4, password_hash=$5,
  credits=$6, total_credits_purchased=$7, is_pro=$8, updated_at=NOW();`
	_, err := executor(r.pool, qx).Exec(ctx, q,
		u.ID, u.Name, u.Email, u.Username, u.PasswordHash,
		u.Credits, u.TotalCreditsPurchased, u.IsPro, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, qx repository.Tx, id string) (*model.User, error) {
	row := pickRow(ctx, r.pool, qx, `SELECT `+userColumns+` FROM users WHERE id=$1;`, id)
	return scanUser(row)
}

func (r *UserRepo) FindByIdentifier(ctx context.Context, qx repository.Tx, identifier string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email=$1 OR username=$1;`
	row := pickRow(ctx, r.pool, qx, q, identifier)
	return scanUser(row)
}

func (r *UserRepo) ExistsByEmailOrUsername(ctx context.Context, qx repository.Tx, email, username string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1 OR username=$2);`
	var exists bool
	if err := pickRow(ctx, r.pool, qx, q, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return exists, nil
}

func (r *UserRepo) SetPro(ctx context.Context, qx repository.Tx, id string, pro bool) error {
	tag, err := executor(r.pool, qx).Exec(ctx,
		`UPDATE users SET is_pro=$2, updated_at=NOW() WHERE id=$1;`, id, pro)
	if err != nil {
		return fmt.Errorf("set pro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ConsumeCredit decrements by one in a single conditional UPDATE so two
// concurrent turns can never both spend the last credit.
func (r *UserRepo) ConsumeCredit(ctx context.Context, qx repository.Tx, id string) (int, error) {
	const q = `
UPDATE users SET credits = credits - 1, updated_at = NOW()
 WHERE id = $1 AND credits > 0
RETURNING credits;`
	var remaining int
	err := pickRow(ctx, r.pool, qx, q, id).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if err != pgx.ErrNoRows {
		return 0, fmt.Errorf("consume credit: %w", err)
	}
	// Distinguish an empty balance from a missing user.
	var exists bool
	if scanErr := pickRow(ctx, r.pool, qx, `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1);`, id).Scan(&exists); scanErr != nil {
		return 0, fmt.Errorf("consume credit: %w", scanErr)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientCredits
}

func (r *UserRepo) GrantCredits(ctx context.Context, qx repository.Tx, id string, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidArgument
	}
	const q = `
UPDATE users
   SET credits = credits + $2,
       total_credits_purchased = total_credits_purchased + $2,
       updated_at = NOW()
 WHERE id = $1
RETURNING credits;`
	var balance int
	if err := pickRow(ctx, r.pool, qx, q, id, amount).Scan(&balance); err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("grant credits: %w", err)
	}
	return balance, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash,
		&u.Credits, &u.TotalCreditsPurchased, &u.IsPro, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
