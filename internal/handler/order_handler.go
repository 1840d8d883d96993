package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sartor/internal/domain"
	"sartor/internal/service"
)

// OrderHandler handles tailoring order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, order)
}

// List handles GET /api/v1/orders. Admins see every order, clients only
// their own.
func (h *OrderHandler) List(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var (
		orders []domain.Order
		total  int
		err    error
	)
	if role == domain.RoleAdmin {
		orders, total, err = h.orderService.List(c.Request.Context(), offset, limit)
	} else {
		orders, total, err = h.orderService.ListByClient(c.Request.Context(), userID, offset, limit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, orders, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), userID, role, orderID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// UpdateStatus handles PATCH /api/v1/orders/:id/status (admin only)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	var input service.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, input.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}
