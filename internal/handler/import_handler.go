package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/service"
	"github.com/TanzilStore/store_api/internal/utils"
)

// ImportHandler exposes the manual catalog synchronization trigger.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler constructs an ImportHandler.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Run triggers one synchronization pass against the legacy API and
// returns its summary. The periodic worker runs the same pass.
func (h *ImportHandler) Run(c *gin.Context) {
	summary, err := h.importService.Run(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("manual catalog import failed")
		utils.Error(c, 502, "IMPORT_FAILED", "Catalog import failed")
		return
	}
	utils.Success(c, 200, "Catalog import finished", summary)
}
