package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for leads.
type Repository interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	GetByEmail(ctx context.Context, email string) (Lead, error)
	GetByExternalID(ctx context.Context, externalID string) (Lead, error)
	List(ctx context.Context) ([]Lead, error)
	UpdateSummary(ctx context.Context, id uuid.UUID, summary, nextAction string) (Lead, error)
}
