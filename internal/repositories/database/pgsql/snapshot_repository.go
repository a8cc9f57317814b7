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

// SnapshotRepository stores portfolio snapshots. Captured summaries are
// written once at creation; the only column a later write may touch is the
// staleness flag and its reason.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a snapshot repository over the pool.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

var _ portsrepo.SnapshotRepository = (*SnapshotRepository)(nil)

// SaveSnapshot persists a new snapshot.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.PFSSnapshot) error {
	summaries, err := json.Marshal(snapshot.Summaries)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s summaries: %w", snapshot.ID, err)
	}

	query := `
		INSERT INTO pfs_snapshots (snapshot_id, subject_id, name, template_name, lender_name, notes, created_at, summaries, is_outdated, outdated_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = r.pool.Exec(ctx, query,
		snapshot.ID,
		snapshot.SubjectID,
		snapshot.Name,
		snapshot.TemplateName,
		snapshot.LenderName,
		snapshot.Notes,
		snapshot.CreatedAt,
		summaries,
		snapshot.IsOutdated,
		snapshot.OutdatedReason,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: snapshot %s", apperrors.ErrDuplicate, snapshot.ID)
		}
		return fmt.Errorf("failed to save snapshot %s: %w", snapshot.ID, err)
	}
	return nil
}

// FindSnapshotByID retrieves one snapshot.
func (r *SnapshotRepository) FindSnapshotByID(ctx context.Context, id string) (*domain.PFSSnapshot, error) {
	query := `
		SELECT snapshot_id, subject_id, name, template_name, lender_name, notes, created_at, summaries, is_outdated, outdated_reason
		FROM pfs_snapshots WHERE snapshot_id = $1;
	`
	snapshot, err := scanSnapshot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: snapshot %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find snapshot %s: %w", id, err)
	}
	return snapshot, nil
}

// ListSnapshotsBySubject returns a subject's snapshots, newest first.
func (r *SnapshotRepository) ListSnapshotsBySubject(ctx context.Context, subjectID string) ([]domain.PFSSnapshot, error) {
	query := `
		SELECT snapshot_id, subject_id, name, template_name, lender_name, notes, created_at, summaries, is_outdated, outdated_reason
		FROM pfs_snapshots WHERE subject_id = $1 ORDER BY created_at DESC, snapshot_id;
	`
	rows, err := r.pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots for subject %s: %w", subjectID, err)
	}
	defer rows.Close()

	snapshots := make([]domain.PFSSnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snapshots = append(snapshots, *snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot rows: %w", err)
	}
	return snapshots, nil
}

// MarkSnapshotOutdated flips the staleness flag once; an already-outdated
// snapshot keeps its original reason.
func (r *SnapshotRepository) MarkSnapshotOutdated(ctx context.Context, id string, reason string) error {
	query := `
		UPDATE pfs_snapshots SET is_outdated = TRUE, outdated_reason = $2
		WHERE snapshot_id = $1 AND is_outdated = FALSE;
	`
	tag, err := r.pool.Exec(ctx, query, id, reason)
	if err != nil {
		return fmt.Errorf("failed to mark snapshot %s outdated: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already outdated; only the former is an error.
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pfs_snapshots WHERE snapshot_id = $1);`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check snapshot %s: %w", id, err)
		}
		if !exists {
			return fmt.Errorf("%w: snapshot %s", apperrors.ErrNotFound, id)
		}
	}
	return nil
}

func scanSnapshot(row pgx.Row) (*domain.PFSSnapshot, error) {
	var snapshot domain.PFSSnapshot
	var summaries []byte
	err := row.Scan(
		&snapshot.ID,
		&snapshot.SubjectID,
		&snapshot.Name,
		&snapshot.TemplateName,
		&snapshot.LenderName,
		&snapshot.Notes,
		&snapshot.CreatedAt,
		&summaries,
		&snapshot.IsOutdated,
		&snapshot.OutdatedReason,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(summaries, &snapshot.Summaries); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot summaries: %w", err)
	}
	return &snapshot, nil
}
