package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novastream/novastream/internal/api/dto"
	"github.com/novastream/novastream/internal/logger"
)

type CatalogHandler struct {
	logger *logger.Logger
}

func NewCatalogHandler(logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{logger: logger}
}

// GetCatalog returns the static reference tables the checkout UI renders
// selections from
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewCatalogResponse())
}
