package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// TherapyMessage is one append-only entry in a session's history.
// Messages are owned by their session and ordered by
// (created_at ASC, id ASC); ULID ids make the id tiebreak follow
// creation order as well.
type TherapyMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"message_text"`
	Emotion   *string   `json:"emotion_detected"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTherapyMessage(sessionID string, sender Sender, text string, emotion *string) *TherapyMessage {
	now := time.Now()
	return &TherapyMessage{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		SessionID: sessionID,
		Sender:    sender,
		Text:      text,
		Emotion:   emotion,
		CreatedAt: now,
	}
}

// Role maps the stored sender onto an LLM chat role. Anything that is
// not the user collapses to "assistant".
func (m *TherapyMessage) Role() string {
	if m.Sender == SenderUser {
		return "user"
	}
	return "assistant"
}
