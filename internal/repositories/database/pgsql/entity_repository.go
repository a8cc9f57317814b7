// Package pgsql implements the repository ports on PostgreSQL via pgx.
// Entities of all kinds share one jsonb-backed table, keyed by kind; the
// generic repository is instantiated once per collection.
package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pfsuite/pfs_backend/internal/apperrors"
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	portsrepo "github.com/pfsuite/pfs_backend/internal/core/ports/repositories"
)

const uniqueViolationCode = "23505"

// EntityRepository stores one entity kind in the shared pfs_entities table.
// The full entity (including versioning bookkeeping and the rollback
// snapshot) lives in the jsonb data column; the indexed columns exist for
// querying only and are derived from the entity on every write.
type EntityRepository[T domain.Entity, PT domain.Ref[T]] struct {
	pool *pgxpool.Pool
	kind domain.EntityKind
}

// NewEntityRepository creates a repository bound to one entity kind.
func NewEntityRepository[T domain.Entity, PT domain.Ref[T]](pool *pgxpool.Pool, kind domain.EntityKind) *EntityRepository[T, PT] {
	return &EntityRepository[T, PT]{pool: pool, kind: kind}
}

var _ portsrepo.EntityRepository[domain.BankAccount] = (*EntityRepository[domain.BankAccount, *domain.BankAccount])(nil)

// FindByID retrieves an entity by id, including soft-deleted ones.
func (r *EntityRepository[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	query := `SELECT data FROM pfs_entities WHERE kind = $1 AND entity_id = $2;`

	var data []byte
	err := r.pool.QueryRow(ctx, query, r.kind, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, r.kind, id)
		}
		return nil, fmt.Errorf("failed to find %s %s: %w", r.kind, id, err)
	}

	var entity T
	if err := json.Unmarshal(data, &entity); err != nil {
		return nil, fmt.Errorf("failed to decode stored %s %s: %w", r.kind, id, err)
	}
	return &entity, nil
}

// ListBySubject retrieves all of a subject's entities of this kind,
// including soft-deleted ones, ordered by creation time.
func (r *EntityRepository[T, PT]) ListBySubject(ctx context.Context, subjectID string) ([]T, error) {
	query := `SELECT data FROM pfs_entities WHERE kind = $1 AND subject_id = $2 ORDER BY created_at, entity_id;`

	rows, err := r.pool.Query(ctx, query, r.kind, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s entities for subject %s: %w", r.kind, subjectID, err)
	}
	defer rows.Close()

	entities := make([]T, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.kind, err)
		}
		var entity T
		if err := json.Unmarshal(data, &entity); err != nil {
			return nil, fmt.Errorf("failed to decode stored %s: %w", r.kind, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", r.kind, err)
	}
	return entities, nil
}

// Create persists a new entity.
func (r *EntityRepository[T, PT]) Create(ctx context.Context, entity T) error {
	meta := PT(&entity).Meta()
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s %s: %w", r.kind, meta.ID, err)
	}

	query := `
		INSERT INTO pfs_entities (entity_id, kind, subject_id, version, created_at, updated_at, deleted_at, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.pool.Exec(ctx, query,
		meta.ID,
		r.kind,
		entity.Subject(),
		meta.Version,
		meta.CreatedAt,
		meta.UpdatedAt,
		meta.DeletedAt,
		data,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: %s %s", apperrors.ErrDuplicate, r.kind, meta.ID)
		}
		return fmt.Errorf("failed to save %s %s: %w", r.kind, meta.ID, err)
	}
	return nil
}

// Update replaces the stored state of an existing entity.
func (r *EntityRepository[T, PT]) Update(ctx context.Context, entity T) error {
	meta := PT(&entity).Meta()
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s %s: %w", r.kind, meta.ID, err)
	}

	query := `
		UPDATE pfs_entities
		SET subject_id = $3, version = $4, updated_at = $5, deleted_at = $6, data = $7
		WHERE kind = $1 AND entity_id = $2;
	`
	tag, err := r.pool.Exec(ctx, query,
		r.kind,
		meta.ID,
		entity.Subject(),
		meta.Version,
		meta.UpdatedAt,
		meta.DeletedAt,
		data,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", r.kind, meta.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, r.kind, meta.ID)
	}
	return nil
}

// Delete removes the record entirely.
func (r *EntityRepository[T, PT]) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM pfs_entities WHERE kind = $1 AND entity_id = $2;`

	tag, err := r.pool.Exec(ctx, query, r.kind, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", r.kind, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, r.kind, id)
	}
	return nil
}
