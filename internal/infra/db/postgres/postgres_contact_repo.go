package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

type ContactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

func (r *ContactRepo) Save(ctx context.Context, qx any, m *model.ContactMessage) error {
	const q = `
INSERT INTO contact_messages (id, email, message, created_at)
VALUES ($1,$2,$3,$4);`
	if _, err := executor(r.pool, qx).Exec(ctx, q, m.ID, m.Email, m.Message, m.CreatedAt); err != nil {
		return fmt.Errorf("save contact: %w", err)
	}
	return nil
}
