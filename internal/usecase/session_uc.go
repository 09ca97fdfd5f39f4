// File: internal/usecase/session_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/logging"
)

// Compile-time check
var _ SessionUseCase = (*sessionUC)(nil)

// SessionUseCase owns the session lifecycle. Sessions are persisted for
// Pro users only; free-tier chat is intentionally memory-less at the
// server, so Start returns the nil sentinel (no error) for non-Pro
// callers.
type SessionUseCase interface {
	Start(ctx context.Context, user *model.User, category model.Category, title string) (*model.TherapySession, error)
	// End is idempotent; it fails with domain.ErrNotFound when the
	// session does not exist or belongs to another user.
	End(ctx context.Context, userID, sessionID string) error
	// List returns the user's sessions, most recent first, each with
	// its message count.
	List(ctx context.Context, userID string) ([]*SessionSummary, error)
	// Messages returns an owned session plus its full history,
	// oldest first.
	Messages(ctx context.Context, userID, sessionID string) (*model.TherapySession, []*model.TherapyMessage, error)
}

// SessionSummary pairs a session with its message volume for list views.
type SessionSummary struct {
	*model.TherapySession
	MessageCount int `json:"message_count"`
}

type sessionUC struct {
	sessions repository.TherapySessionRepository
	messages repository.TherapyMessageRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewSessionUseCase(
	sessions repository.TherapySessionRepository,
	messages repository.TherapyMessageRepository,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *sessionUC {
	return &sessionUC{sessions: sessions, messages: messages, tm: tm, log: logger}
}

func (s *sessionUC) Start(ctx context.Context, user *model.User, category model.Category, title string) (*model.TherapySession, error) {
	defer logging.TraceDuration(s.log, "SessionUC.Start")()

	if !user.IsPro {
		// Deliberate sentinel: free users chat without a persisted session.
		return nil, nil
	}
	if title == "" {
		title = string(category) + " Session"
	}

	sess := model.NewTherapySession("", user.ID, title)

	// Closing the previous active session and inserting the new one must
	// land together; a half-applied start would leave two active sessions
	// or none.
	err := s.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		closed, err := s.sessions.CloseActiveByUser(ctx, tx, user.ID, time.Now())
		if err != nil {
			return err
		}
		if closed > 0 {
			s.log.Debug().Str("user_id", user.ID).Int64("superseded", closed).Msg("closed active sessions")
		}
		return s.sessions.Save(ctx, tx, sess)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionUC) End(ctx context.Context, userID, sessionID string) error {
	defer logging.TraceDuration(s.log, "SessionUC.End")()

	sess, err := s.sessions.FindByIDForUser(ctx, repository.NoTX, sessionID, userID)
	if err != nil {
		return err
	}
	sess.End(time.Now())
	return s.sessions.Save(ctx, repository.NoTX, sess)
}

func (s *sessionUC) List(ctx context.Context, userID string) ([]*SessionSummary, error) {
	sessions, err := s.sessions.FindAllByUser(ctx, repository.NoTX, userID, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		n, err := s.messages.CountBySession(ctx, repository.NoTX, sess.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &SessionSummary{TherapySession: sess, MessageCount: n})
	}
	return out, nil
}

func (s *sessionUC) Messages(ctx context.Context, userID, sessionID string) (*model.TherapySession, []*model.TherapyMessage, error) {
	sess, err := s.sessions.FindByIDForUser(ctx, repository.NoTX, sessionID, userID)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := s.messages.FindBySession(ctx, repository.NoTX, sessionID, 0)
	if err != nil {
		return nil, nil, err
	}
	return sess, msgs, nil
}
