// Package remote abstracts the system of record the schedule service
// mediates all mutations against. Two implementations exist: an HTTP
// client speaking the action-envelope protocol of the legacy department
// endpoint, and a Postgres store for deployments that own their data.
package remote

import (
	"context"

	"github.com/pradipta/sijadwal/internal/app/models"
)

// Store is the collaborator contract for the authoritative schedule data.
// FetchAll serves both cold load and the forced resync that follows every
// mutation, so implementations must return the complete dataset.
type Store interface {
	FetchAll(ctx context.Context) (models.Dataset, error)
	CreateEntry(ctx context.Context, entry models.ScheduleEntry) error
	UpdateEntry(ctx context.Context, patch models.ScheduleEntryPatch) error
	DeleteEntry(ctx context.Context, id string) error
	BulkCreateEntries(ctx context.Context, entries []models.ScheduleEntry) error
	DeleteAllEntries(ctx context.Context) error
	// SetLockedAll flips the lock flag on the given entries. Backends that
	// support it may do this in a single statement; the HTTP protocol only
	// has per-record update, so that implementation loops.
	SetLockedAll(ctx context.Context, ids []string, locked bool) error
}
