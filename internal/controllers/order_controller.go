package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
)

// OrderController handles HTTP requests for the order lifecycle
type OrderController interface {
	// ListAll retrieves every order, enriched for the kitchen panel
	ListAll(c *gin.Context)
	// ListByUser retrieves a customer's orders
	ListByUser(c *gin.Context)
	// Create places a new order with an optional initial item batch
	Create(c *gin.Context)
	// ListItems retrieves the items of one order
	ListItems(c *gin.Context)
	// AddItem appends one item to an existing order
	AddItem(c *gin.Context)
	// ClearItems bulk-removes an order's items
	ClearItems(c *gin.Context)
	// Finalize updates status, table number and/or notes
	Finalize(c *gin.Context)
	// Cancel marks an order cancelled, preserving history
	Cancel(c *gin.Context)
	// Delete removes an order once its items are gone
	Delete(c *gin.Context)
}

type orderController struct {
	orders services.OrderService
	items  services.OrderItemService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(orders services.OrderService, items services.OrderItemService) *orderController {
	return &orderController{orders: orders, items: items}
}

type createOrderRequest struct {
	UserID uint                        `json:"user_id" binding:"required"`
	Items  []services.OrderItemRequest `json:"items"`
	Notes  string                      `json:"notes"`
}

type addItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type finalizeRequest struct {
	Status      *models.Status `json:"status"`
	TableNumber *int           `json:"table_number"`
	Notes       *string        `json:"notes"`
}

// ListAll godoc
// @Summary List all orders
// @Description Get every order enriched with items and customer name, most recent first
// @Tags orders
// @Accept json
// @Produce json
// @Success 200 {array} services.OrderDetails
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/orders [get]
func (oc *orderController) ListAll(ctx *gin.Context) {
	orders, err := oc.orders.ListAll()
	if err != nil {
		respondError(ctx, "Failed to list orders", err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// ListByUser godoc
// @Summary List a customer's orders
// @Tags orders
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} models.Order
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/orders/user/{userId} [get]
func (oc *orderController) ListByUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	orders, err := oc.orders.ListByUser(userID)
	if err != nil {
		respondError(ctx, "Failed to list orders", err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// Create godoc
// @Summary Place an order
// @Description Create a pending order for a user, optionally with an initial batch of items. The total is computed once after all items are inserted.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body createOrderRequest true "Order request"
// @Success 201 {object} models.Order
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/orders [post]
func (oc *orderController) Create(ctx *gin.Context) {
	var req createOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "detail": err.Error()})
		return
	}

	order, err := oc.orders.Create(req.UserID, req.Notes, req.Items)
	if err != nil {
		respondError(ctx, "Failed to create order", err)
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// ListItems godoc
// @Summary List an order's items
// @Description Get the order's items joined with product names, in insertion order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {array} models.OrderItemDetail
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/orders/{id}/items [get]
func (oc *orderController) ListItems(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	items, err := oc.items.ListByOrder(orderID)
	if err != nil {
		respondError(ctx, "Failed to list order items", err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// AddItem godoc
// @Summary Add an item to an order
// @Description Insert one product with a snapshotted unit price, then recompute the order total
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param item body addItemRequest true "Item request"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/orders/{id}/items [post]
func (oc *orderController) AddItem(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req addItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "detail": err.Error()})
		return
	}

	item, total, err := oc.orders.AddItem(orderID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(ctx, "Failed to add item to order", err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Item added to order",
		"item":    item,
		"total":   total,
	})
}

// ClearItems godoc
// @Summary Remove all items from an order
// @Description Bulk-remove the order's items and reset the cached total, so the order itself can be deleted
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/orders/{id}/items [delete]
func (oc *orderController) ClearItems(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := oc.orders.GetByID(orderID); err != nil {
		respondError(ctx, "Failed to clear order items", err)
		return
	}
	if err := oc.items.DeleteByOrder(orderID); err != nil {
		respondError(ctx, "Failed to clear order items", err)
		return
	}
	if err := oc.orders.ApplyTotal(orderID, 0); err != nil {
		respondError(ctx, "Failed to reset order total", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Order items removed"})
}

// Finalize godoc
// @Summary Update order status
// @Description Sparse update of status, table number and notes. Omitted fields are left untouched.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param update body finalizeRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/orders/{id}/finalize [patch]
func (oc *orderController) Finalize(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req finalizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "detail": err.Error()})
		return
	}

	update := services.OrderUpdate{
		Status:      req.Status,
		TableNumber: req.TableNumber,
		Notes:       req.Notes,
	}
	if err := oc.orders.SetStatus(orderID, update); err != nil {
		respondError(ctx, "Failed to update order", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}

// Cancel godoc
// @Summary Cancel an order
// @Description Mark the order cancelled, preserving its history
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/orders/{id}/cancel [patch]
func (oc *orderController) Cancel(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := oc.orders.Cancel(orderID); err != nil {
		respondError(ctx, "Failed to cancel order", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}

// Delete godoc
// @Summary Delete an order
// @Description Remove an order. Fails while line items remain: clear them first.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/orders/{id} [delete]
func (oc *orderController) Delete(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := oc.orders.Delete(orderID); err != nil {
		respondError(ctx, "Failed to delete order", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
