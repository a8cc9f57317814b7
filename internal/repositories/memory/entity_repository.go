// Package memory provides mutex-guarded in-memory implementations of the
// repository ports, used by tests and as the no-database fallback selected
// at startup.
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

// EntityRepository is a thread-safe in-memory store for one entity kind.
type EntityRepository[T domain.Entity, PT domain.Ref[T]] struct {
	mu       sync.RWMutex
	entities map[string]T
}

// NewEntityRepository creates an empty in-memory entity store.
func NewEntityRepository[T domain.Entity, PT domain.Ref[T]]() *EntityRepository[T, PT] {
	return &EntityRepository[T, PT]{entities: make(map[string]T)}
}

// FindByID returns the stored entity, including soft-deleted ones.
func (r *EntityRepository[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.entities[id]
	if !ok {
		return nil, fmt.Errorf("%w: entity %s", apperrors.ErrNotFound, id)
	}
	return &entity, nil
}

// ListBySubject returns all entities owned by a subject, ordered by creation
// time then id for determinism.
func (r *EntityRepository[T, PT]) ListBySubject(ctx context.Context, subjectID string) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]T, 0)
	for _, entity := range r.entities {
		if entity.Subject() == subjectID {
			result = append(result, entity)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		mi, mj := PT(&result[i]).Meta(), PT(&result[j]).Meta()
		if !mi.CreatedAt.Equal(mj.CreatedAt) {
			return mi.CreatedAt.Before(mj.CreatedAt)
		}
		return mi.ID < mj.ID
	})
	return result, nil
}

// Create stores a new entity, rejecting duplicate ids.
func (r *EntityRepository[T, PT]) Create(ctx context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := PT(&entity).Meta().ID
	if _, exists := r.entities[id]; exists {
		return fmt.Errorf("%w: entity %s", apperrors.ErrDuplicate, id)
	}
	r.entities[id] = entity
	return nil
}

// Update replaces the stored state of an existing entity.
func (r *EntityRepository[T, PT]) Update(ctx context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := PT(&entity).Meta().ID
	if _, exists := r.entities[id]; !exists {
		return fmt.Errorf("%w: entity %s", apperrors.ErrNotFound, id)
	}
	r.entities[id] = entity
	return nil
}

// Delete removes the record entirely.
func (r *EntityRepository[T, PT]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entities[id]; !exists {
		return fmt.Errorf("%w: entity %s", apperrors.ErrNotFound, id)
	}
	delete(r.entities, id)
	return nil
}

var _ portsrepo.EntityRepository[domain.BankAccount] = (*EntityRepository[domain.BankAccount, *domain.BankAccount])(nil)
