package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pfsuite/pfs_backend/internal/apperrors"
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	portssvc "github.com/pfsuite/pfs_backend/internal/core/ports/services"
	"github.com/pfsuite/pfs_backend/internal/middleware"
)

// entityHandler serves the versioned CRUD surface for one entity collection.
// The same handler is instantiated for all eleven collections; the domain
// types' JSON tags are the request/response contract.
type entityHandler[T domain.Entity, PT domain.Ref[T]] struct {
	svc portssvc.EntitySvc[T]
}

// registerEntityRoutes mounts one collection under /subjects/:subjectID.
func registerEntityRoutes[T domain.Entity, PT domain.Ref[T]](rg *gin.RouterGroup, path string, svc portssvc.EntitySvc[T]) {
	h := &entityHandler[T, PT]{svc: svc}

	col := rg.Group("/subjects/:subjectID/" + path)
	{
		col.POST("", h.create)
		col.GET("", h.list)
		col.GET("/:id", h.get)
		col.PUT("/:id", h.update)
		col.DELETE("/:id", h.softDelete)
		col.POST("/:id/restore", h.restore)
		col.POST("/:id/rollback", h.rollback)
	}
}

func (h *entityHandler[T, PT]) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	stamped, err := withSubject(body, c.Param("subjectID"))
	if err != nil {
		logger.Warn("Malformed entity payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var entity T
	if err := json.Unmarshal(stamped, &entity); err != nil {
		logger.Warn("Entity payload does not fit schema", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), entity)
	if err != nil {
		abortWithError(c, err, "Failed to create entity")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *entityHandler[T, PT]) list(c *gin.Context) {
	includeDeleted := c.Query("includeDeleted") == "true"
	entities, err := h.svc.List(c.Request.Context(), c.Param("subjectID"), includeDeleted)
	if err != nil {
		abortWithError(c, err, "Failed to list entities")
		return
	}
	c.JSON(http.StatusOK, entities)
}

func (h *entityHandler[T, PT]) get(c *gin.Context) {
	entity, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err, "Failed to retrieve entity")
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *entityHandler[T, PT]) update(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is required"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		abortWithError(c, err, "Failed to update entity")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *entityHandler[T, PT]) softDelete(c *gin.Context) {
	deleted, err := h.svc.SoftDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err, "Failed to delete entity")
		return
	}
	c.JSON(http.StatusOK, deleted)
}

func (h *entityHandler[T, PT]) restore(c *gin.Context) {
	restored, err := h.svc.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err, "Failed to restore entity")
		return
	}
	c.JSON(http.StatusOK, restored)
}

func (h *entityHandler[T, PT]) rollback(c *gin.Context) {
	rolledBack, err := h.svc.Rollback(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err, "Failed to roll back entity")
		return
	}
	c.JSON(http.StatusOK, rolledBack)
}

// withSubject overrides the payload's subjectID with the path parameter so
// an entity can never be created under a different subject than the route.
func withSubject(body []byte, subjectID string) ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, err
		}
	}
	encoded, err := json.Marshal(subjectID)
	if err != nil {
		return nil, err
	}
	fields["subjectID"] = encoded
	return json.Marshal(fields)
}

// abortWithError maps engine errors onto HTTP responses.
func abortWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNoSnapshot):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
