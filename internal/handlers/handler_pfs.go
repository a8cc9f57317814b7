package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pfsuite/pfs_backend/internal/core/ports/services"
	"github.com/pfsuite/pfs_backend/internal/utils/export"
)

// pfsHandler serves the assembled personal financial statement.
type pfsHandler struct {
	assembler portssvc.PFSAssemblerSvc
}

func newPFSHandler(assembler portssvc.PFSAssemblerSvc) *pfsHandler {
	return &pfsHandler{assembler: assembler}
}

func registerPFSRoutes(rg *gin.RouterGroup, assembler portssvc.PFSAssemblerSvc) {
	h := newPFSHandler(assembler)

	pfs := rg.Group("/subjects/:subjectID/pfs")
	{
		pfs.GET("", h.getPFS)
		pfs.GET("/export", h.exportPFS)
	}
}

// getPFS assembles and returns the subject's full PFS: all active entity
// collections plus the summaries computed from exactly those collections.
func (h *pfsHandler) getPFS(c *gin.Context) {
	pfs, err := h.assembler.AssemblePFS(c.Request.Context(), c.Param("subjectID"))
	if err != nil {
		abortWithError(c, err, "Failed to assemble PFS")
		return
	}
	c.JSON(http.StatusOK, pfs)
}

// exportPFS returns the flat key/value rendering of the summaries, the
// input contract of the PDF template-filling collaborator.
func (h *pfsHandler) exportPFS(c *gin.Context) {
	pfs, err := h.assembler.AssemblePFS(c.Request.Context(), c.Param("subjectID"))
	if err != nil {
		abortWithError(c, err, "Failed to assemble PFS for export")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subjectID":   pfs.SubjectID,
		"generatedAt": pfs.GeneratedAt,
		"fields":      export.FlattenSummaries(pfs.Summaries),
	})
}
