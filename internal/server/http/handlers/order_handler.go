package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	"github.com/anrodrig/comanda/internal/server/http/dto"
)

// OrderHandler processes order submission, reads and lifecycle changes.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler creates OrderHandler instance.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Local == "" || req.ScheduledAt.IsZero() {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.SubmitOrder(c.Request.Context(), model.OrderSubmission{
		Local:       req.Local,
		ScheduledAt: req.ScheduledAt,
		UserID:      CurrentUserID(c),
		Notes:       req.Notes,
		Items:       toItemRequests(req.Items),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		OrderID:       order.PublicID,
		DisplayNumber: order.DisplayNumber,
		Total:         order.Total,
		Status:        string(order.Status),
	})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	publicID := c.Param("id")
	if uuid.Validate(publicID) != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), publicID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// ListActive handles GET /api/orders.
func (h *OrderHandler) ListActive(c *gin.Context) {
	orders, err := h.facade.ActiveOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// ListPending handles GET /api/admin/orders/pending.
func (h *OrderHandler) ListPending(c *gin.Context) {
	h.listForToday(c, model.OrderStatusPending)
}

// ListConfirmed handles GET /api/admin/orders/confirmed.
func (h *OrderHandler) ListConfirmed(c *gin.Context) {
	h.listForToday(c, model.OrderStatusConfirmed)
}

func (h *OrderHandler) listForToday(c *gin.Context, status model.OrderStatus) {
	orders, err := h.facade.OrdersForToday(c.Request.Context(), CurrentUserID(c), status)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Update handles PUT /api/admin/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	publicID := c.Param("id")
	if uuid.Validate(publicID) != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrder(c.Request.Context(), CurrentUserID(c), publicID, toItemRequests(req.Items), req.ScheduledAt, req.Notes)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// ChangeStatus handles PUT /api/admin/orders/:id/status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	publicID := c.Param("id")
	if uuid.Validate(publicID) != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ChangeOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ChangeOrderStatus(c.Request.Context(), CurrentUserID(c), publicID, model.OrderStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrSubmitterBlocked):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrNotAdmin):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrEmptyOrder),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrUnknownMenuItem):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrInvalidStatusChange):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toItemRequests(items []dto.OrderItemRequest) []model.OrderItemRequest {
	out := make([]model.OrderItemRequest, 0, len(items))
	for _, item := range items {
		out = append(out, model.OrderItemRequest{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}
	return out
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderLineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderLineItemResponse{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}
	return dto.OrderResponse{
		OrderID:       order.PublicID,
		Local:         order.Local,
		DisplayNumber: order.DisplayNumber,
		ScheduledAt:   order.ScheduledAt,
		Total:         order.Total,
		Status:        string(order.Status),
		Notes:         order.Notes,
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}
