package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pfsuite/pfs_backend/internal/apperrors"
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/finmetrics"
	portsrepo "github.com/pfsuite/pfs_backend/internal/core/ports/repositories"
	portssvc "github.com/pfsuite/pfs_backend/internal/core/ports/services"
	"github.com/pfsuite/pfs_backend/internal/dto"
	"github.com/pfsuite/pfs_backend/internal/middleware"
)

// SnapshotService owns the portfolio snapshot lifecycle: creation from the
// live assembled PFS, retrieval, pairwise comparison, and the staleness
// tracker that flags snapshots once their underlying data has moved on.
type SnapshotService struct {
	repo      portsrepo.SnapshotRepository
	assembler portssvc.PFSAssemblerSvc
}

// NewSnapshotService wires the snapshot repository and the PFS assembler.
func NewSnapshotService(repo portsrepo.SnapshotRepository, assembler portssvc.PFSAssemblerSvc) *SnapshotService {
	return &SnapshotService{repo: repo, assembler: assembler}
}

var _ portssvc.SnapshotSvc = (*SnapshotService)(nil)

// CreateSnapshot assembles the subject's current PFS and captures its
// summaries immutably. The captured totals are write-once; only the
// staleness flag changes afterwards.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, subjectID string, req dto.CreateSnapshotRequest) (*domain.PFSSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pfs, err := s.assembler.AssemblePFS(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	snapshot := domain.PFSSnapshot{
		ID:           uuid.NewString(),
		SubjectID:    subjectID,
		Name:         req.Name,
		TemplateName: req.TemplateName,
		LenderName:   req.LenderName,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
		Summaries:    pfs.Summaries,
	}

	if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
		logger.Error("Failed to save snapshot", slog.String("subject_id", subjectID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Snapshot created", slog.String("snapshot_id", snapshot.ID), slog.String("subject_id", subjectID), slog.String("name", req.Name))
	return &snapshot, nil
}

// GetSnapshot retrieves one snapshot by id.
func (s *SnapshotService) GetSnapshot(ctx context.Context, id string) (*domain.PFSSnapshot, error) {
	snapshot, err := s.repo.FindSnapshotByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find snapshot", slog.String("snapshot_id", id), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return snapshot, nil
}

// ListSnapshots retrieves every snapshot taken for a subject.
func (s *SnapshotService) ListSnapshots(ctx context.Context, subjectID string) ([]domain.PFSSnapshot, error) {
	snapshots, err := s.repo.ListSnapshotsBySubject(ctx, subjectID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list snapshots", slog.String("subject_id", subjectID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	if snapshots == nil {
		snapshots = []domain.PFSSnapshot{}
	}
	return snapshots, nil
}

// CompareSnapshots computes signed per-metric deltas between exactly two
// stored snapshots. Both snapshots must belong to the same subject.
func (s *SnapshotService) CompareSnapshots(ctx context.Context, baseID, targetID string) ([]finmetrics.MetricDelta, error) {
	base, err := s.GetSnapshot(ctx, baseID)
	if err != nil {
		return nil, err
	}
	target, err := s.GetSnapshot(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if base.SubjectID != target.SubjectID {
		return nil, fmt.Errorf("%w: snapshots %s and %s belong to different subjects", apperrors.ErrValidation, baseID, targetID)
	}
	return finmetrics.CompareSummaries(base.Summaries, target.Summaries, nil), nil
}

// MarkAllOutdated conservatively flags every not-yet-outdated snapshot of a
// subject. No field-level dependency tracking is attempted: any relevant
// entity mutation invalidates all snapshots, trading precision for the
// guarantee of no false negatives. Already-outdated snapshots keep their
// original reason. Marking continues past individual failures so one bad
// record cannot shield the rest.
func (s *SnapshotService) MarkAllOutdated(ctx context.Context, subjectID string, reason string) error {
	snapshots, err := s.repo.ListSnapshotsBySubject(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("failed to list snapshots for staleness marking: %w", err)
	}

	var errs []error
	marked := 0
	for i := range snapshots {
		if snapshots[i].IsOutdated {
			continue
		}
		if err := s.repo.MarkSnapshotOutdated(ctx, snapshots[i].ID, reason); err != nil {
			errs = append(errs, fmt.Errorf("snapshot %s: %w", snapshots[i].ID, err))
			continue
		}
		marked++
	}

	if marked > 0 {
		middleware.GetLoggerFromCtx(ctx).Info("Snapshots marked outdated",
			slog.String("subject_id", subjectID),
			slog.Int("count", marked),
			slog.String("reason", reason))
	}
	return errors.Join(errs...)
}
