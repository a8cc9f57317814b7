package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pfsuite/pfs_backend/internal/core/ports/services"
	"github.com/pfsuite/pfs_backend/internal/dto"
	"github.com/pfsuite/pfs_backend/internal/middleware"
)

// snapshotHandler serves the portfolio snapshot lifecycle and comparison.
type snapshotHandler struct {
	snapshots portssvc.SnapshotSvc
}

func newSnapshotHandler(snapshots portssvc.SnapshotSvc) *snapshotHandler {
	return &snapshotHandler{snapshots: snapshots}
}

func registerSnapshotRoutes(rg *gin.RouterGroup, snapshots portssvc.SnapshotSvc) {
	h := newSnapshotHandler(snapshots)

	group := rg.Group("/subjects/:subjectID/snapshots")
	{
		group.POST("", h.createSnapshot)
		group.GET("", h.listSnapshots)
		group.GET("/compare", h.compareSnapshots)
		group.GET("/:id", h.getSnapshot)
	}
}

func (h *snapshotHandler) createSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSnapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	snapshot, err := h.snapshots.CreateSnapshot(c.Request.Context(), c.Param("subjectID"), req)
	if err != nil {
		abortWithError(c, err, "Failed to create snapshot")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSnapshotResponse(snapshot))
}

func (h *snapshotHandler) listSnapshots(c *gin.Context) {
	snapshots, err := h.snapshots.ListSnapshots(c.Request.Context(), c.Param("subjectID"))
	if err != nil {
		abortWithError(c, err, "Failed to list snapshots")
		return
	}
	c.JSON(http.StatusOK, dto.ToSnapshotResponses(snapshots))
}

func (h *snapshotHandler) getSnapshot(c *gin.Context) {
	snapshot, err := h.snapshots.GetSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err, "Failed to retrieve snapshot")
		return
	}
	c.JSON(http.StatusOK, dto.ToSnapshotResponse(snapshot))
}

// compareSnapshots compares exactly two stored snapshots named by the base
// and target query parameters.
func (h *snapshotHandler) compareSnapshots(c *gin.Context) {
	baseID := c.Query("base")
	targetID := c.Query("target")
	if baseID == "" || targetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both 'base' and 'target' snapshot ids are required"})
		return
	}

	deltas, err := h.snapshots.CompareSnapshots(c.Request.Context(), baseID, targetID)
	if err != nil {
		abortWithError(c, err, "Failed to compare snapshots")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"base":    baseID,
		"target":  targetID,
		"metrics": deltas,
	})
}
