package repository

import (
	"context"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
)

// -----------------------------
// Therapy messages (append-only)
// -----------------------------

type TherapyMessageRepository interface {
	Save(ctx context.Context, qx any, m *model.TherapyMessage) error
	// FindBySession returns messages oldest first, ordered by
	// (created_at, id), capped at limit (limit <= 0 means all).
	FindBySession(ctx context.Context, qx any, sessionID string, limit int) ([]*model.TherapyMessage, error)
	// FindRecentBySession returns the limit most recent messages,
	// still oldest first.
	FindRecentBySession(ctx context.Context, qx any, sessionID string, limit int) ([]*model.TherapyMessage, error)
	CountBySession(ctx context.Context, qx any, sessionID string) (int, error)
}
