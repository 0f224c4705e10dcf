// Package repository provides Postgres persistence for leads.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when no lead matches the lookup.
	ErrNotFound = errors.New("lead not found")
	// ErrDuplicate is returned when an insert violates the email or
	// external id uniqueness constraint.
	ErrDuplicate = errors.New("duplicate lead")
)

// Lead sources.
const (
	SourceManual   = "manual"
	SourceExternal = "external"
)

// Lead is the persisted lead record.
type Lead struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	Company    *string
	City       *string
	Country    *string
	Summary    *string
	NextAction *string
	Source     string
	ExternalID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateLeadParams holds the fields for a new lead.
type CreateLeadParams struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	Company    *string
	City       *string
	Country    *string
	Source     string
	ExternalID *string
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// New creates a Postgres-backed lead repository.
func New(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const leadColumns = `id, first_name, last_name, email, phone, company, city, country,
	summary, next_action, source, external_id, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email, &lead.Phone,
		&lead.Company, &lead.City, &lead.Country, &lead.Summary, &lead.NextAction,
		&lead.Source, &lead.ExternalID, &lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

func (r *pgRepository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		INSERT INTO leads (first_name, last_name, email, phone, company, city, country, source, external_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+leadColumns,
		params.FirstName, params.LastName, params.Email, params.Phone,
		params.Company, params.City, params.Country, params.Source, params.ExternalID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return Lead{}, ErrDuplicate
		}
		return Lead{}, err
	}
	return lead, nil
}

func (r *pgRepository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

func (r *pgRepository) GetByEmail(ctx context.Context, email string) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE email = $1
	`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

func (r *pgRepository) GetByExternalID(ctx context.Context, externalID string) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE external_id = $1
	`, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

func (r *pgRepository) List(ctx context.Context) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return leads, nil
}

func (r *pgRepository) UpdateSummary(ctx context.Context, id uuid.UUID, summary, nextAction string) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads
		SET summary = $2, next_action = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, summary, nextAction,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
