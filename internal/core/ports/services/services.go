// Package services declares the service facades consumed by the HTTP layer
// and by other services.
package services

import (
	"context"
	"encoding/json"

	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/finmetrics"
	"github.com/pfsuite/pfs_backend/internal/dto"
)

// EntitySvc is the versioned CRUD facade over one entity collection.
type EntitySvc[T domain.Entity] interface {
	Create(ctx context.Context, entity T) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, subjectID string, includeDeleted bool) ([]T, error)
	Update(ctx context.Context, id string, patch json.RawMessage) (*T, error)
	SoftDelete(ctx context.Context, id string) (*T, error)
	Restore(ctx context.Context, id string) (*T, error)
	Rollback(ctx context.Context, id string) (*T, error)
}

// PFSAssemblerSvc assembles one consistent FullPFS for a subject.
type PFSAssemblerSvc interface {
	AssemblePFS(ctx context.Context, subjectID string) (*domain.FullPFS, error)
}

// StalenessMarker flags every existing snapshot of a subject as outdated.
// Callers treat it as a best-effort side effect: a returned error is logged
// at the call site and never propagated to the originating mutation.
type StalenessMarker interface {
	MarkAllOutdated(ctx context.Context, subjectID string, reason string) error
}

// SnapshotSvc manages portfolio snapshots and their comparison.
type SnapshotSvc interface {
	StalenessMarker

	CreateSnapshot(ctx context.Context, subjectID string, req dto.CreateSnapshotRequest) (*domain.PFSSnapshot, error)
	GetSnapshot(ctx context.Context, id string) (*domain.PFSSnapshot, error)
	ListSnapshots(ctx context.Context, subjectID string) ([]domain.PFSSnapshot, error)
	CompareSnapshots(ctx context.Context, baseID, targetID string) ([]finmetrics.MetricDelta, error)
}
