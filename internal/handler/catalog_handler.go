package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sartor/internal/service"
)

// CatalogHandler handles tailoring service catalog endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create handles POST /api/v1/services (admin only)
func (h *CatalogHandler) Create(c *gin.Context) {
	var input service.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	svc, err := h.catalogService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, svc)
}

// List handles GET /api/v1/services
func (h *CatalogHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	activeOnly := c.DefaultQuery("active_only", "true") != "false"

	services, total, err := h.catalogService.List(c.Request.Context(), activeOnly, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, services, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/services/:id
func (h *CatalogHandler) GetByID(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid service ID")
		return
	}

	svc, err := h.catalogService.GetByID(c.Request.Context(), serviceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, svc)
}

// Update handles PUT /api/v1/services/:id (admin only)
func (h *CatalogHandler) Update(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid service ID")
		return
	}

	var input service.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	svc, err := h.catalogService.Update(c.Request.Context(), serviceID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, svc)
}

// Deactivate handles DELETE /api/v1/services/:id (admin only)
func (h *CatalogHandler) Deactivate(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid service ID")
		return
	}

	if err := h.catalogService.Deactivate(c.Request.Context(), serviceID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "service deactivated"})
}
