package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TherapySession is the aggregate root for one conversation.
// At most one session per user is active at any time; starting a new
// session supersedes (closes) the previous active one.
type TherapySession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"session_title"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	IsActive  bool       `json:"is_active"`
}

func NewTherapySession(id, userID, title string) *TherapySession {
	if id == "" {
		id = uuid.NewString()
	}
	return &TherapySession{
		ID:        id,
		UserID:    userID,
		Title:     title,
		StartedAt: time.Now(),
		IsActive:  true,
	}
}

// End marks the session inactive and stamps the end time. Idempotent:
// an already-ended session keeps its original EndedAt.
func (s *TherapySession) End(at time.Time) {
	if !s.IsActive && s.EndedAt != nil {
		return
	}
	s.IsActive = false
	if s.EndedAt == nil {
		s.EndedAt = &at
	}
}

// DurationMinutes is the whole-minute session length, 0 while unterminated.
func (s *TherapySession) DurationMinutes() int {
	if s.EndedAt == nil {
		return 0
	}
	d := int(s.EndedAt.Sub(s.StartedAt) / time.Minute)
	if d < 0 {
		return 0
	}
	return d
}

// Category recovers the category from the session title by stripping the
// trailing " Session" suffix, defaulting when no title was recorded.
func (s *TherapySession) Category() string {
	title := s.Title
	if title == "" {
		title = string(CategoryMentalHealth) + " Session"
	}
	return strings.TrimSpace(strings.Replace(title, " Session", "", 1))
}
