// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/adapter"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/logging"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/metrics"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

// TurnInput carries one chat turn from the web layer.
type TurnInput struct {
	Category      string
	SessionID     string
	ClientHistory []ClientTurn
	Message       string
	Emotion       *string
}

// ChatUseCase sequences a single turn: spend a credit, assemble memory,
// call the model, persist the exchange (Pro only).
type ChatUseCase interface {
	HandleTurn(ctx context.Context, user *model.User, in TurnInput) (reply string, err error)
}

type chatUC struct {
	credits  CreditLedgerUseCase
	sessions repository.TherapySessionRepository
	messages MessageLogUseCase
	ai       adapter.AIServiceAdapter
	model    string
	window   int

	// invalidated after a persisted turn so the next dashboard read is fresh
	dashboards DashboardInvalidator

	log *zerolog.Logger
}

// DashboardInvalidator drops a user's cached analytics. Optional; a nil
// invalidator is skipped.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

func NewChatUseCase(
	credits CreditLedgerUseCase,
	sessions repository.TherapySessionRepository,
	messages MessageLogUseCase,
	ai adapter.AIServiceAdapter,
	modelName string,
	historyWindow int,
	dashboards DashboardInvalidator,
	logger *zerolog.Logger,
) *chatUC {
	return &chatUC{
		credits:    credits,
		sessions:   sessions,
		messages:   messages,
		ai:         ai,
		model:      modelName,
		window:     historyWindow,
		dashboards: dashboards,
		log:        logger,
	}
}

// HandleTurn runs the turn pipeline. The credit is spent before the
// model call and is not refunded on generation failure; a failure
// persisting history after a successful generation is logged and
// swallowed so the reply still reaches the caller.
func (c *chatUC) HandleTurn(ctx context.Context, user *model.User, in TurnInput) (string, error) {
	defer logging.TraceDuration(c.log, "ChatUC.HandleTurn")()
	start := time.Now()

	userMessage := strings.TrimSpace(in.Message)
	if userMessage == "" {
		return "", domain.ErrInvalidArgument
	}

	// A persisted turn replays and appends session history, so the session
	// must belong to the caller; a foreign or unknown id is NotFound and
	// costs no credit.
	persisted := user.IsPro && in.SessionID != ""
	if persisted {
		if _, err := c.sessions.FindByIDForUser(ctx, repository.NoTX, in.SessionID, user.ID); err != nil {
			return "", err
		}
	}

	// (1) Spend the credit up front; InsufficientCredits short-circuits
	// before any model traffic.
	if _, err := c.credits.Consume(ctx, user.ID); err != nil {
		metrics.ObserveChatTurn(user.IsPro, false, time.Since(start))
		return "", err
	}

	// (2) Pick the memory variant once for the whole turn.
	category, _ := model.ParseCategory(in.Category)
	var src MemorySource
	if persisted {
		src = PersistedMemory{Log: c.messages, SessionID: in.SessionID, Window: c.window}
	} else {
		src = FreeMemory{Turns: in.ClientHistory}
	}

	msgs, err := AssembleContext(ctx, category, src, userMessage)
	if err != nil {
		metrics.ObserveChatTurn(user.IsPro, false, time.Since(start))
		return "", err
	}

	if n, err := c.ai.CountTokens(ctx, c.model, msgs); err == nil {
		metrics.ObservePromptTokens(n)
		c.log.Debug().Str("user_id", user.ID).Int("prompt_tokens", n).Msg("context assembled")
	}

	// (3) Model call. No retry here; the credit stays spent.
	reply, err := c.ai.Chat(ctx, c.model, msgs)
	if err != nil {
		metrics.ObserveChatTurn(user.IsPro, false, time.Since(start))
		c.log.Warn().Err(err).Str("user_id", user.ID).Msg("model call failed")
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	// (4) Persist both halves of the exchange for Pro sessions. The turn
	// already succeeded, so history-write failures must not surface.
	if persisted {
		if _, err := c.messages.Append(ctx, in.SessionID, model.SenderUser, userMessage, in.Emotion); err != nil {
			c.log.Error().Err(err).Str("session_id", in.SessionID).Msg("persist user turn failed")
		}
		if _, err := c.messages.Append(ctx, in.SessionID, model.SenderAssistant, reply, nil); err != nil {
			c.log.Error().Err(err).Str("session_id", in.SessionID).Msg("persist assistant turn failed")
		}
		if c.dashboards != nil {
			_ = c.dashboards.Invalidate(ctx, user.ID)
		}
	}

	metrics.ObserveChatTurn(user.IsPro, true, time.Since(start))
	return reply, nil
}
