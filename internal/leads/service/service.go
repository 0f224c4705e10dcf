// Package service implements lead management: manual creation guarded against
// duplicate emails, cache-aside reads, enrichment write-back and the
// deduplication gate used by directory imports.
package service

import (
	"context"
	"errors"
	"fmt"

	"leadsync_backend/internal/leads/cache"
	"leadsync_backend/internal/leads/repository"
	"leadsync_backend/platform/apperr"
	"leadsync_backend/platform/logger"
	"leadsync_backend/platform/phone"

	"github.com/google/uuid"
)

// Service handles lead business logic.
type Service struct {
	repo  repository.Repository
	cache *cache.Cache
	log   *logger.Logger
}

// New creates a new lead service.
func New(repo repository.Repository, cache *cache.Cache, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// CreateInput holds the fields for a manually created lead.
type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Company   *string
	City      *string
	Country   *string
}

// ExternalInput holds the mapped fields of a directory record.
type ExternalInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	City       *string
	Country    *string
	ExternalID string
}

// Create inserts a manually created lead. A lead with the same email yields a
// conflict error; the unique constraint backs the pre-check against
// concurrent creates.
func (s *Service) Create(ctx context.Context, input CreateInput) (repository.Lead, error) {
	s.log.Info("creating lead", "email", input.Email)

	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return repository.Lead{}, apperr.Conflict(fmt.Sprintf("lead with email %s already exists", input.Email))
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.log.DatabaseError("lead lookup by email", err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to look up lead", err)
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     normalizePhone(input.Phone),
		Company:   input.Company,
		City:      input.City,
		Country:   input.Country,
		Source:    repository.SourceManual,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return repository.Lead{}, apperr.Conflict(fmt.Sprintf("lead with email %s already exists", input.Email))
		}
		s.log.DatabaseError("lead insert", err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to create lead", err)
	}

	s.log.Info("lead created", "lead_id", lead.ID)
	return lead, nil
}

// List returns all leads, newest first.
func (s *Service) List(ctx context.Context) ([]repository.Lead, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		s.log.DatabaseError("lead list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}
	return leads, nil
}

// GetByID returns a lead by id through the cache. On a miss the store copy is
// fetched and cached for the configured TTL; absent leads are never cached.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	if lead, ok := s.cache.Get(ctx, id); ok {
		return lead, nil
	}

	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Lead{}, apperr.NotFound(fmt.Sprintf("lead with ID %s not found", id))
		}
		s.log.DatabaseError("lead lookup by id", err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to fetch lead", err)
	}

	s.cache.Set(ctx, lead)
	return lead, nil
}

// UpdateSummary persists the enrichment pair onto a lead and invalidates its
// cache entry after the commit. A failed invalidation leaves a stale copy
// readable until TTL expiry; that bounded staleness is accepted.
func (s *Service) UpdateSummary(ctx context.Context, id uuid.UUID, summary, nextAction string) (repository.Lead, error) {
	lead, err := s.repo.UpdateSummary(ctx, id, summary, nextAction)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Lead{}, apperr.NotFound(fmt.Sprintf("lead with ID %s not found", id))
		}
		s.log.DatabaseError("lead summary update", err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to update lead", err)
	}

	_ = s.cache.Invalidate(ctx, id)
	return lead, nil
}

// CreateFromExternal runs the deduplication gate for a directory record.
// It returns true when the record was imported and false when it was skipped
// as a duplicate by email or external id. The pre-checks are an optimization;
// a unique violation from a concurrent import is also mapped to skipped.
func (s *Service) CreateFromExternal(ctx context.Context, input ExternalInput) (bool, error) {
	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		s.log.Info("skipping duplicate lead", "email", input.Email)
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	if input.ExternalID != "" {
		if _, err := s.repo.GetByExternalID(ctx, input.ExternalID); err == nil {
			s.log.Info("skipping duplicate lead", "external_id", input.ExternalID)
			return false, nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return false, err
		}
	}

	externalID := &input.ExternalID
	if input.ExternalID == "" {
		externalID = nil
	}

	_, err := s.repo.Create(ctx, repository.CreateLeadParams{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      normalizePhone(input.Phone),
		City:       input.City,
		Country:    input.Country,
		Source:     repository.SourceExternal,
		ExternalID: externalID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Info("skipping duplicate lead", "email", input.Email)
			return false, nil
		}
		return false, err
	}

	s.log.Info("imported lead", "email", input.Email)
	return true, nil
}

func normalizePhone(value *string) *string {
	if value == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*value)
	if normalized == "" {
		return nil
	}
	return &normalized
}
