package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pfsuite/pfs_backend/internal/apperrors"
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	portsrepo "github.com/pfsuite/pfs_backend/internal/core/ports/repositories"
)

// SnapshotRepository is a thread-safe in-memory snapshot store.
type SnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]domain.PFSSnapshot
}

// NewSnapshotRepository creates an empty in-memory snapshot store.
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{snapshots: make(map[string]domain.PFSSnapshot)}
}

var _ portsrepo.SnapshotRepository = (*SnapshotRepository)(nil)

// SaveSnapshot stores a new snapshot, rejecting duplicate ids.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.PFSSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snapshots[snapshot.ID]; exists {
		return fmt.Errorf("%w: snapshot %s", apperrors.ErrDuplicate, snapshot.ID)
	}
	r.snapshots[snapshot.ID] = snapshot
	return nil
}

// FindSnapshotByID retrieves one snapshot.
func (r *SnapshotRepository) FindSnapshotByID(ctx context.Context, id string) (*domain.PFSSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("%w: snapshot %s", apperrors.ErrNotFound, id)
	}
	return &snapshot, nil
}

// ListSnapshotsBySubject returns a subject's snapshots, newest first.
func (r *SnapshotRepository) ListSnapshotsBySubject(ctx context.Context, subjectID string) ([]domain.PFSSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.PFSSnapshot, 0)
	for _, snapshot := range r.snapshots {
		if snapshot.SubjectID == subjectID {
			result = append(result, snapshot)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// MarkSnapshotOutdated flips the staleness flag. A snapshot already marked
// outdated keeps its original reason; the call is a no-op then.
func (r *SnapshotRepository) MarkSnapshotOutdated(ctx context.Context, id string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot, ok := r.snapshots[id]
	if !ok {
		return fmt.Errorf("%w: snapshot %s", apperrors.ErrNotFound, id)
	}
	if snapshot.IsOutdated {
		return nil
	}
	snapshot.IsOutdated = true
	snapshot.OutdatedReason = reason
	r.snapshots[id] = snapshot
	return nil
}
