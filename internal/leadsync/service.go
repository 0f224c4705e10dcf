// Package leadsync drives the ingestion of candidate contacts from the
// external directory into the lead store, decoupled from its triggers by the
// job queue.
package leadsync

import (
	"context"
	"fmt"

	"leadsync_backend/internal/leads/service"
	"leadsync_backend/internal/leadsync/directory"
	"leadsync_backend/platform/logger"
)

// DirectoryClient fetches candidate records from the external directory.
type DirectoryClient interface {
	Fetch(ctx context.Context, count int) ([]directory.Record, error)
}

// Importer runs the deduplication gate for one mapped record.
type Importer interface {
	CreateFromExternal(ctx context.Context, input service.ExternalInput) (bool, error)
}

// Result is the aggregate outcome of one sync job.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Service processes sync jobs.
type Service struct {
	directory DirectoryClient
	importer  Importer
	log       *logger.Logger
}

// NewService creates a new sync service.
func NewService(directory DirectoryClient, importer Importer, log *logger.Logger) *Service {
	return &Service{directory: directory, importer: importer, log: log}
}

// Run executes one sync job: fetch count records, map each to lead fields and
// pass it through the deduplication gate, strictly sequentially. A provider
// failure aborts the whole job; a record-level failure is not isolated either,
// it fails the job and leaves retry to the queue.
func (s *Service) Run(ctx context.Context, count int) (Result, error) {
	s.log.Info("starting directory sync", "count", count)

	records, err := s.directory.Fetch(ctx, count)
	if err != nil {
		s.log.Error("directory sync failed", "error", err)
		return Result{}, fmt.Errorf("external provider: %w", err)
	}

	var result Result
	for _, record := range records {
		imported, err := s.importer.CreateFromExternal(ctx, mapRecord(record))
		if err != nil {
			s.log.Error("directory sync failed", "email", record.Email, "error", err)
			return Result{}, err
		}
		if imported {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	s.log.Info("directory sync completed", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

func mapRecord(record directory.Record) service.ExternalInput {
	return service.ExternalInput{
		FirstName:  record.FirstName,
		LastName:   record.LastName,
		Email:      record.Email,
		Phone:      optional(record.Phone),
		City:       optional(record.City),
		Country:    optional(record.Country),
		ExternalID: record.ExternalID,
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
