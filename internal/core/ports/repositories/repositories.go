// Package repositories declares the persistence collaborator contracts the
// engine consumes. The engine does not know whether an implementation is a
// hosted database, a file, or an in-memory store.
package repositories

import (
	"context"

	"github.com/pfsuite/pfs_backend/internal/core/domain"
)

// EntityRepository is the single CRUD contract reused for every entity
// collection, instantiated once per concrete entity type. Implementations
// return apperrors.ErrNotFound (wrapped) when an id does not exist.
type EntityRepository[T domain.Entity] interface {
	// FindByID retrieves an entity by id, including soft-deleted ones.
	FindByID(ctx context.Context, id string) (*T, error)

	// ListBySubject retrieves every entity of this kind owned by a subject,
	// including soft-deleted ones; callers filter with domain.FilterActive.
	ListBySubject(ctx context.Context, subjectID string) ([]T, error)

	// Create persists a new entity.
	Create(ctx context.Context, entity T) error

	// Update replaces the stored state of an existing entity.
	Update(ctx context.Context, entity T) error

	// Delete removes the record entirely. Soft deletion goes through Update.
	Delete(ctx context.Context, id string) error
}

// SnapshotReader defines read operations for portfolio snapshots.
type SnapshotReader interface {
	FindSnapshotByID(ctx context.Context, id string) (*domain.PFSSnapshot, error)
	ListSnapshotsBySubject(ctx context.Context, subjectID string) ([]domain.PFSSnapshot, error)
}

// SnapshotWriter defines write operations for portfolio snapshots. Captured
// totals are write-once at creation; only the outdated flag and reason may
// change afterwards.
type SnapshotWriter interface {
	SaveSnapshot(ctx context.Context, snapshot domain.PFSSnapshot) error
	MarkSnapshotOutdated(ctx context.Context, id string, reason string) error
}

// SnapshotRepository combines snapshot reads and writes.
type SnapshotRepository interface {
	SnapshotReader
	SnapshotWriter
}
