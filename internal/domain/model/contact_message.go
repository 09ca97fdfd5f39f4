package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage stores an inbound contact-us submission.
type ContactMessage struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func NewContactMessage(email, message string) *ContactMessage {
	return &ContactMessage{
		ID:        uuid.NewString(),
		Email:     email,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
