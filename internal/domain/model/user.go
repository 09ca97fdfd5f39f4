package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
)

// StartingCredits is granted to every freshly registered account.
const StartingCredits = 12

// User is a domain entity representing a registered account.
// Credits are mutated only through the ledger's atomic operations.
type User struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Username              string    `json:"username"`
	PasswordHash          string    `json:"-"`
	Credits               int       `json:"credits"`
	TotalCreditsPurchased int       `json:"total_credits_purchased"`
	IsPro                 bool      `json:"is_pro"`
	CreatedAt             time.Time `json:"-"`
	UpdatedAt             time.Time `json:"-"`
}

func NewUser(id, name, email, username, passwordHash string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if email == "" || username == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Credits:      StartingCredits,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
