package repository

import (
	"context"
	"time"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
)

// -----------------------------
// Therapy sessions
// -----------------------------

type TherapySessionRepository interface {
	Save(ctx context.Context, qx any, s *model.TherapySession) error
	FindByID(ctx context.Context, qx any, id string) (*model.TherapySession, error)
	// FindByIDForUser returns domain.ErrNotFound when the session does not
	// exist or belongs to another user.
	FindByIDForUser(ctx context.Context, qx any, id, userID string) (*model.TherapySession, error)
	// FindAllByUser lists sessions most recent first. limit <= 0 means all.
	FindAllByUser(ctx context.Context, qx any, userID string, limit int) ([]*model.TherapySession, error)
	// CloseActiveByUser marks every active session of the user inactive,
	// stamping endedAt. Returns the number of sessions closed.
	CloseActiveByUser(ctx context.Context, qx any, userID string, endedAt time.Time) (int64, error)
}
