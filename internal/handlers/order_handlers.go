package handlers

import (
	"errors"
	"net/http"
	"time"

	"geobike_backend/internal/middleware"
	"geobike_backend/internal/models"
	"geobike_backend/internal/services"
	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder handles the creation of a new order with its lines.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, &req, "CreateOrder") {
		return
	}
	session := middleware.CurrentSession(c)
	if !session.ActsForCustomer(models.RoleCustomer, req.CustomerID) {
		respondForbidden(c, "No puede crear pedidos para otro cliente.")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
		} else if errors.Is(err, services.ErrCatalogItemNotFound) || errors.Is(err, services.ErrCustomerNotFound) || errors.Is(err, services.ErrInsufficientStock) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, messageAfterSentinel(err), err.Error()))
		} else {
			utils.LogError(err, "CreateOrder: Error from orderService.CreateOrder")
			utils.RespondInternalError(c, "Error al crear el pedido.")
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrdersByCustomer lists a customer's orders, newest first.
func (h *OrderHandler) GetOrdersByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "clienteId", "customer")
	if !ok {
		return
	}
	if !middleware.CurrentSession(c).ActsForCustomer(models.RoleCustomer, customerID) {
		respondForbidden(c, "No puede consultar pedidos de otro cliente.")
		return
	}

	orders, err := h.orderService.GetOrdersByCustomer(c.Request.Context(), customerID)
	if err != nil {
		utils.LogError(err, "GetOrdersByCustomer: Error from orderService")
		utils.RespondInternalError(c, "Failed to fetch orders.")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrders handles fetching all orders with filters
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filters models.OrderFilters

	customerID, ok := optionalInt64Query(c, "clienteId")
	if !ok {
		return
	}
	filters.CustomerID = customerID

	if raw := c.Query("estado"); raw != "" {
		status, valid := models.ParseOrderStatus(raw)
		if !valid {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order status provided.", raw))
			return
		}
		filters.Status = &status
	}
	if raw := c.Query("fecha"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		filters.Date = &day
	}
	filters.Page = utils.PositiveIntOrDefault(c.Query("page"), 1)
	filters.PageSize = utils.PositiveIntOrDefault(c.Query("pageSize"), 20)

	orders, total, err := h.orderService.GetOrders(c.Request.Context(), filters)
	if err != nil {
		utils.LogError(err, "GetOrders: Error from orderService.GetOrders")
		utils.RespondInternalError(c, "Failed to fetch orders.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     orders,
		"total":    total,
		"page":     filters.Page,
		"pageSize": filters.PageSize,
	})
}

// GetOrderByID handles fetching a single order by ID with its lines
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	orderID, ok := pathID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Pedido no encontrado.", err.Error()))
		} else {
			utils.LogError(err, "GetOrderByID: Error from orderService.GetOrderByID")
			utils.RespondInternalError(c, "Failed to fetch order.")
		}
		return
	}
	if !middleware.CurrentSession(c).ActsForCustomer(models.RoleCustomer, order.CustomerID) {
		respondForbidden(c, "No puede consultar pedidos de otro cliente.")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus answers 204 on success and changes nothing for an unknown id.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id", "order")
	if !ok {
		return
	}
	var req services.UpdateOrderStatusRequest
	if !bindJSON(c, &req, "UpdateOrderStatus") {
		return
	}

	if err := h.orderService.UpdateOrderStatus(c.Request.Context(), orderID, req); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Pedido no encontrado.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidOrderStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order status provided.", err.Error()))
		} else {
			utils.LogError(err, "UpdateOrderStatus: Error from orderService.UpdateOrderStatus")
			utils.RespondInternalError(c, "Failed to update order status.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
