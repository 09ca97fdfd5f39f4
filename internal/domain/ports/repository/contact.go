package repository

import (
	"context"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
)

type ContactRepository interface {
	Save(ctx context.Context, qx any, m *model.ContactMessage) error
}
