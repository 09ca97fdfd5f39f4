// File: internal/usecase/contact_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
)

// Compile-time check
var _ ContactUseCase = (*contactUC)(nil)

// ContactUseCase records messages sent through the contact form.
type ContactUseCase interface {
	Submit(ctx context.Context, email, message string) error
}

type contactUC struct {
	contacts repository.ContactRepository
	log      *zerolog.Logger
}

func NewContactUseCase(contacts repository.ContactRepository, logger *zerolog.Logger) *contactUC {
	return &contactUC{contacts: contacts, log: logger}
}

func (c *contactUC) Submit(ctx context.Context, email, message string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	message = strings.TrimSpace(message)
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidArgument)
	}
	if message == "" {
		return fmt.Errorf("%w: message is required", domain.ErrInvalidArgument)
	}
	cm := model.NewContactMessage(email, message)
	if err := c.contacts.Save(ctx, repository.NoTX, cm); err != nil {
		return err
	}
	c.log.Info().Str("contact_id", cm.ID).Msg("contact message stored")
	return nil
}
