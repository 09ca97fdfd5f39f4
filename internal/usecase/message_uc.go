// File: internal/usecase/message_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
)

// maxHistoryLimit bounds any history read; the stored limit is a
// server-side cap, never a client knob.
const maxHistoryLimit = 200

// Compile-time check
var _ MessageLogUseCase = (*messageLogUC)(nil)

// MessageLogUseCase is the append-only per-session message history.
type MessageLogUseCase interface {
	// Append records one message. When sessionID is empty the call is a
	// deliberate no-op (free-tier turns have no session to log against)
	// and returns (nil, nil).
	Append(ctx context.Context, sessionID string, sender model.Sender, text string, emotion *string) (*model.TherapyMessage, error)
	// History returns up to limit messages oldest first.
	History(ctx context.Context, sessionID string, limit int) ([]*model.TherapyMessage, error)
	// Recent returns the limit most recent messages, oldest first.
	Recent(ctx context.Context, sessionID string, limit int) ([]*model.TherapyMessage, error)
}

type messageLogUC struct {
	messages repository.TherapyMessageRepository
	log      *zerolog.Logger
}

func NewMessageLogUseCase(messages repository.TherapyMessageRepository, logger *zerolog.Logger) *messageLogUC {
	return &messageLogUC{messages: messages, log: logger}
}

func (m *messageLogUC) Append(ctx context.Context, sessionID string, sender model.Sender, text string, emotion *string) (*model.TherapyMessage, error) {
	if sessionID == "" {
		return nil, nil
	}
	msg := model.NewTherapyMessage(sessionID, sender, text, emotion)
	if err := m.messages.Save(ctx, repository.NoTX, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (m *messageLogUC) History(ctx context.Context, sessionID string, limit int) ([]*model.TherapyMessage, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return m.messages.FindBySession(ctx, repository.NoTX, sessionID, limit)
}

func (m *messageLogUC) Recent(ctx context.Context, sessionID string, limit int) ([]*model.TherapyMessage, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return m.messages.FindRecentBySession(ctx, repository.NoTX, sessionID, limit)
}
