// File: internal/infra/db/postgres/postgres_session_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
)

var _ repository.TherapySessionRepository = (*SessionRepo)(nil)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

const sessionColumns = `id, user_id, title, started_at, ended_at, is_active`

func (r *SessionRepo) Save(ctx context.Context, qx any, s *model.TherapySession) error {
	const q = `
INSERT INTO therapy_sessions (id, user_id, title, started_at, ended_at, is_active)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  ended_at = EXCLUDED.ended_at,
  is_active = EXCLUDED.is_active;`
	_, err := executor(r.pool, qx).Exec(ctx, q,
		s.ID, s.UserID, s.Title, s.StartedAt, s.EndedAt, s.IsActive)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepo) FindByID(ctx context.Context, qx any, id string) (*model.TherapySession, error) {
	row := pickRow(ctx, r.pool, qx, `SELECT `+sessionColumns+` FROM therapy_sessions WHERE id=$1;`, id)
	return scanSession(row)
}

func (r *SessionRepo) FindByIDForUser(ctx context.Context, qx any, id, userID string) (*model.TherapySession, error) {
	const q = `SELECT ` + sessionColumns + ` FROM therapy_sessions WHERE id=$1 AND user_id=$2;`
	row := pickRow(ctx, r.pool, qx, q, id, userID)
	return scanSession(row)
}

func (r *SessionRepo) FindAllByUser(ctx context.Context, qx any, userID string, limit int) ([]*model.TherapySession, error) {
	q := `SELECT ` + sessionColumns + ` FROM therapy_sessions WHERE user_id=$1 ORDER BY started_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := executor(r.pool, qx).Query(ctx, q+`;`, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()
	var out []*model.TherapySession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SessionRepo) CloseActiveByUser(ctx context.Context, qx any, userID string, endedAt time.Time) (int64, error) {
	const q = `
UPDATE therapy_sessions SET is_active = FALSE, ended_at = $2
 WHERE user_id = $1 AND is_active;`
	tag, err := executor(r.pool, qx).Exec(ctx, q, userID, endedAt)
	if err != nil {
		return 0, fmt.Errorf("close active sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*model.TherapySession, error) {
	var s model.TherapySession
	if err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.StartedAt, &s.EndedAt, &s.IsActive); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &s, nil
}
