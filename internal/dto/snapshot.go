package dto

import (
	"time"

	"github.com/pfsuite/pfs_backend/internal/core/domain"
)

// CreateSnapshotRequest names a new point-in-time capture of a subject's
// computed summaries.
type CreateSnapshotRequest struct {
	Name         string `json:"name" binding:"required"`
	TemplateName string `json:"templateName"`
	LenderName   string `json:"lenderName"`
	Notes        string `json:"notes"`
}

// SnapshotResponse is the API shape of a stored snapshot.
type SnapshotResponse struct {
	ID             string              `json:"id"`
	SubjectID      string              `json:"subjectID"`
	Name           string              `json:"name"`
	TemplateName   string              `json:"templateName,omitempty"`
	LenderName     string              `json:"lenderName,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	Summaries      domain.PFSSummaries `json:"summaries"`
	IsOutdated     bool                `json:"isOutdated"`
	OutdatedReason string              `json:"outdatedReason,omitempty"`
}

// ToSnapshotResponse converts a domain snapshot to its API shape.
func ToSnapshotResponse(s *domain.PFSSnapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:             s.ID,
		SubjectID:      s.SubjectID,
		Name:           s.Name,
		TemplateName:   s.TemplateName,
		LenderName:     s.LenderName,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		Summaries:      s.Summaries,
		IsOutdated:     s.IsOutdated,
		OutdatedReason: s.OutdatedReason,
	}
}

// ToSnapshotResponses converts a list of snapshots.
func ToSnapshotResponses(snapshots []domain.PFSSnapshot) []SnapshotResponse {
	out := make([]SnapshotResponse, 0, len(snapshots))
	for i := range snapshots {
		out = append(out, ToSnapshotResponse(&snapshots[i]))
	}
	return out
}
