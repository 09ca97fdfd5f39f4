// File: internal/infra/db/postgres/postgres_message_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
)

var _ repository.TherapyMessageRepository = (*MessageRepo)(nil)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Save(ctx context.Context, qx any, m *model.TherapyMessage) error {
	const q = `
INSERT INTO therapy_messages (id, session_id, sender, message_text, emotion_detected, created_at)
VALUES ($1,$2,$3,$4,$5,$6);`
	_, err := executor(r.pool, qx).Exec(ctx, q,
		m.ID, m.SessionID, string(m.Sender), m.Text, m.Emotion, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

func (r *MessageRepo) FindBySession(ctx context.Context, qx any, sessionID string, limit int) ([]*model.TherapyMessage, error) {
	q := `
SELECT id, session_id, sender, message_text, emotion_detected, created_at
  FROM therapy_messages WHERE session_id=$1
 ORDER BY created_at ASC, id ASC`
	args := []any{sessionID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := executor(r.pool, qx).Query(ctx, q+`;`, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()
	var out []*model.TherapyMessage
	for rows.Next() {
		var m model.TherapyMessage
		var sender string
		if err := rows.Scan(&m.ID, &m.SessionID, &sender, &m.Text, &m.Emotion, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Sender = model.Sender(sender)
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *MessageRepo) FindRecentBySession(ctx context.Context, qx any, sessionID string, limit int) ([]*model.TherapyMessage, error) {
	if limit <= 0 {
		return r.FindBySession(ctx, qx, sessionID, 0)
	}
	const q = `
SELECT id, session_id, sender, message_text, emotion_detected, created_at FROM (
  SELECT id, session_id, sender, message_text, emotion_detected, created_at
    FROM therapy_messages WHERE session_id=$1
   ORDER BY created_at DESC, id DESC LIMIT $2
) recent ORDER BY created_at ASC, id ASC;`
	rows, err := executor(r.pool, qx).Query(ctx, q, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent messages: %w", err)
	}
	defer rows.Close()
	var out []*model.TherapyMessage
	for rows.Next() {
		var m model.TherapyMessage
		var sender string
		if err := rows.Scan(&m.ID, &m.SessionID, &sender, &m.Text, &m.Emotion, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Sender = model.Sender(sender)
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *MessageRepo) CountBySession(ctx context.Context, qx any, sessionID string) (int, error) {
	var n int
	if err := pickRow(ctx, r.pool, qx, `SELECT COUNT(*) FROM therapy_messages WHERE session_id=$1;`, sessionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
