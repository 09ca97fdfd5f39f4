// File: internal/usecase/memory.go
package usecase

import (
	"context"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/adapter"
)

// ClientTurn is one entry of client-supplied history. Free-tier chat
// trusts the client as the memory store, so this is taken verbatim.
type ClientTurn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// MemorySource yields prior conversation turns, already mapped to model
// roles and ordered oldest first. The orchestrator picks the variant
// once per request; nothing downstream re-checks the caller's tier.
type MemorySource interface {
	Load(ctx context.Context) ([]adapter.Message, error)
}

// PersistedMemory replays the server-owned history of one session,
// bounded to the most recent window.
type PersistedMemory struct {
	Log       MessageLogUseCase
	SessionID string
	Window    int
}

func (p PersistedMemory) Load(ctx context.Context) ([]adapter.Message, error) {
	window := p.Window
	if window <= 0 {
		window = 30
	}
	msgs, err := p.Log.Recent(ctx, p.SessionID, window)
	if err != nil {
		return nil, err
	}
	out := make([]adapter.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, adapter.Message{Role: m.Role(), Content: m.Text})
	}
	return out, nil
}

// FreeMemory replays client-supplied history verbatim; no persistence,
// no cap beyond what the caller sent.
type FreeMemory struct {
	Turns []ClientTurn
}

func (f FreeMemory) Load(context.Context) ([]adapter.Message, error) {
	out := make([]adapter.Message, 0, len(f.Turns))
	for _, t := range f.Turns {
		role := "assistant"
		if t.Sender == string(model.SenderUser) {
			role = "user"
		}
		out = append(out, adapter.Message{Role: role, Content: t.Text})
	}
	return out, nil
}

// AssembleContext builds the ordered sequence handed to the language
// model: the category's system prompt, then prior turns from src, then
// the new user message.
func AssembleContext(ctx context.Context, category model.Category, src MemorySource, userMessage string) ([]adapter.Message, error) {
	history, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]adapter.Message, 0, len(history)+2)
	out = append(out, adapter.Message{Role: "system", Content: category.SystemPrompt()})
	out = append(out, history...)
	out = append(out, adapter.Message{Role: "user", Content: userMessage})
	return out, nil
}
