// Package store persists report configurations.
//
// Two backends share one interface: memory for development, tests, and
// single-shot CLI runs, and mongo for the hosted service where authors
// edit reports that must survive restarts. Reports are stored whole; the
// layout engine never reads partial documents.
package store

import (
	"context"
	"time"

	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/report"
)

// Store is the interface for report persistence backends.
type Store interface {
	// Get retrieves a report by id. Returns ErrCodeReportNotFound when
	// no report with that id exists.
	Get(ctx context.Context, id string) (report.Report, error)

	// Put upserts a report, stamping UpdatedAt (and CreatedAt on first
	// write). The report must validate.
	Put(ctx context.Context, r report.Report) error

	// Delete removes a report. Deleting a missing report is an error.
	Delete(ctx context.Context, id string) error

	// List returns all stored reports.
	List(ctx context.Context) ([]report.Report, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func errNotFound(id string) error {
	return errors.New(errors.ErrCodeReportNotFound, "report %s not found", id)
}

// stamp fills in the write timestamps.
func stamp(r *report.Report, existing bool, createdAt time.Time) {
	now := time.Now().UTC()
	if existing {
		r.CreatedAt = createdAt
	} else {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}
