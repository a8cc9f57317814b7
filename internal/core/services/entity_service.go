package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pfsuite/pfs_backend/internal/apperrors"
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	portsrepo "github.com/pfsuite/pfs_backend/internal/core/ports/repositories"
	portssvc "github.com/pfsuite/pfs_backend/internal/core/ports/services"
	"github.com/pfsuite/pfs_backend/internal/middleware"
)

// EntityService is the versioned CRUD service instantiated once per entity
// collection. Every mutation stamps the version bookkeeping, runs the
// synchronization hook so derived fields are never stale, persists, and
// finally marks existing snapshots outdated as a best-effort side effect
// that can never fail the mutation itself.
type EntityService[T domain.Entity, PT domain.Ref[T]] struct {
	kind      domain.EntityKind
	repo      portsrepo.EntityRepository[T]
	syncHook  func(PT)
	staleness portssvc.StalenessMarker
}

// NewEntityService wires a repository, a per-type derived-field sync hook
// (nil for entities without derived fields) and the staleness marker.
func NewEntityService[T domain.Entity, PT domain.Ref[T]](
	kind domain.EntityKind,
	repo portsrepo.EntityRepository[T],
	syncHook func(PT),
	staleness portssvc.StalenessMarker,
) *EntityService[T, PT] {
	return &EntityService[T, PT]{
		kind:      kind,
		repo:      repo,
		syncHook:  syncHook,
		staleness: staleness,
	}
}

// Create initialises versioning on the input, syncs derived fields and
// persists the new entity.
func (s *EntityService[T, PT]) Create(ctx context.Context, entity T) (*T, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if entity.Subject() == "" {
		return nil, fmt.Errorf("%w: subjectID is required", apperrors.ErrValidation)
	}

	created := domain.NewVersioned[T, PT](entity)
	s.applySync(&created)

	if err := s.repo.Create(ctx, created); err != nil {
		logger.Error("Failed to create entity", slog.String("kind", string(s.kind)), slog.String("error", err.Error()))
		return nil, err
	}

	meta := PT(&created).Meta()
	logger.Info("Entity created", slog.String("kind", string(s.kind)), slog.String("entity_id", meta.ID))
	s.markStale(ctx, created.Subject(), fmt.Sprintf("%s %s was added", s.kind, meta.ID))
	return &created, nil
}

// Get retrieves an entity by id, including soft-deleted ones.
func (s *EntityService[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find entity", slog.String("kind", string(s.kind)), slog.String("entity_id", id), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return entity, nil
}

// List retrieves a subject's entities of this kind, active-only by default.
func (s *EntityService[T, PT]) List(ctx context.Context, subjectID string, includeDeleted bool) ([]T, error) {
	entities, err := s.repo.ListBySubject(ctx, subjectID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list entities", slog.String("kind", string(s.kind)), slog.String("subject_id", subjectID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list %s entities: %w", s.kind, err)
	}
	if !includeDeleted {
		entities = domain.FilterActive[T, PT](entities)
	}
	if entities == nil {
		entities = []T{}
	}
	return entities, nil
}

// Update merges a JSON patch into the stored entity, capturing the prior
// state as the rollback snapshot and bumping the version.
func (s *EntityService[T, PT]) Update(ctx context.Context, id string, patch json.RawMessage) (*T, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := domain.UpdateVersioned[T, PT](*current, patch)
	if err != nil {
		return nil, err
	}
	s.applySync(&updated)

	if err := s.repo.Update(ctx, updated); err != nil {
		logger.Error("Failed to update entity", slog.String("kind", string(s.kind)), slog.String("entity_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Entity updated", slog.String("kind", string(s.kind)), slog.String("entity_id", id), slog.Int("version", PT(&updated).Meta().Version))
	s.markStale(ctx, updated.Subject(), s.changeReason(id, *current, updated))
	return &updated, nil
}

// SoftDelete marks the entity logically absent; the record stays retrievable.
func (s *EntityService[T, PT]) SoftDelete(ctx context.Context, id string) (*T, error) {
	return s.transition(ctx, id, "deleted", func(e T) (T, error) {
		return domain.SoftDelete[T, PT](e)
	})
}

// Restore clears a prior soft-delete.
func (s *EntityService[T, PT]) Restore(ctx context.Context, id string) (*T, error) {
	return s.transition(ctx, id, "restored", func(e T) (T, error) {
		return domain.Restore[T, PT](e)
	})
}

// Rollback restores the entity to its one captured prior state. Fails with
// apperrors.ErrNoSnapshot if none exists.
func (s *EntityService[T, PT]) Rollback(ctx context.Context, id string) (*T, error) {
	return s.transition(ctx, id, "rolled back", func(e T) (T, error) {
		return domain.RestoreFromSnapshot[T, PT](e)
	})
}

func (s *EntityService[T, PT]) transition(ctx context.Context, id, verb string, apply func(T) (T, error)) (*T, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := apply(*current)
	if err != nil {
		return nil, err
	}
	s.applySync(&next)

	if err := s.repo.Update(ctx, next); err != nil {
		logger.Error("Failed to persist entity transition", slog.String("kind", string(s.kind)), slog.String("entity_id", id), slog.String("transition", verb), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Entity transition applied", slog.String("kind", string(s.kind)), slog.String("entity_id", id), slog.String("transition", verb))
	s.markStale(ctx, next.Subject(), fmt.Sprintf("%s %s was %s", s.kind, id, verb))
	return &next, nil
}

func (s *EntityService[T, PT]) applySync(e *T) {
	if s.syncHook != nil {
		s.syncHook(PT(e))
	}
}

// changeReason builds the human-readable staleness reason from the field
// diff between the stored and updated states.
func (s *EntityService[T, PT]) changeReason(id string, before, after T) string {
	changes, err := domain.ExtractChanges[T, PT](before, after)
	if err != nil || len(changes) == 0 {
		return fmt.Sprintf("%s %s was updated", s.kind, id)
	}
	fields := make([]string, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s %s changed: %s", s.kind, id, strings.Join(fields, ", "))
}

// markStale conservatively flags every snapshot of the subject as outdated.
// Failures are logged and never propagated; the originating mutation's
// success is independent of this side effect.
func (s *EntityService[T, PT]) markStale(ctx context.Context, subjectID, reason string) {
	if s.staleness == nil {
		return
	}
	if err := s.staleness.MarkAllOutdated(ctx, subjectID, reason); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to mark snapshots outdated",
			slog.String("subject_id", subjectID),
			slog.String("reason", reason),
			slog.String("error", err.Error()))
	}
}
