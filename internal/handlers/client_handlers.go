package handlers

import (
	"errors"
	"net/http"

	"geobike_backend/internal/middleware"
	"geobike_backend/internal/models"
	"geobike_backend/internal/services"
	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CustomerHandler holds the customer service.
type CustomerHandler struct {
	customerService services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: cs}
}

func (h *CustomerHandler) respondCustomerError(c *gin.Context, err error, operation, fallback string) {
	if errors.Is(err, services.ErrValidation) {
		utils.RespondValidationFailed(c, err.Error())
	} else if errors.Is(err, services.ErrEmailExists) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "El email ya está registrado.", err.Error()))
	} else if errors.Is(err, services.ErrCustomerNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cliente no encontrado.", err.Error()))
	} else {
		utils.LogError(err, operation+": Error from customerService")
		utils.RespondInternalError(c, fallback)
	}
}

// RegisterCustomer is the public sign-up endpoint.
func (h *CustomerHandler) RegisterCustomer(c *gin.Context) {
	var req services.RegisterCustomerRequest
	if !bindJSON(c, &req, "RegisterCustomer") {
		return
	}
	customer, err := h.customerService.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		h.respondCustomerError(c, err, "RegisterCustomer", "Error al registrar el cliente.")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	h.listCustomers(c, c.Query("search"))
}

// SearchCustomers matches q against names and email.
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	h.listCustomers(c, c.Query("q"))
}

func (h *CustomerHandler) listCustomers(c *gin.Context, search string) {
	filters := models.PeopleFilters{
		Search:   search,
		Page:     utils.PositiveIntOrDefault(c.Query("page"), 1),
		PageSize: utils.PositiveIntOrDefault(c.Query("pageSize"), 20),
	}
	customers, total, err := h.customerService.GetCustomers(c.Request.Context(), filters)
	if err != nil {
		h.respondCustomerError(c, err, "GetCustomers", "Failed to fetch customers.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     customers,
		"total":    total,
		"page":     filters.Page,
		"pageSize": filters.PageSize,
	})
}

func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	customerID, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}
	if !middleware.CurrentSession(c).ActsForCustomer(models.RoleCustomer, customerID) {
		respondForbidden(c, "No puede consultar otro cliente.")
		return
	}
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		h.respondCustomerError(c, err, "GetCustomerByID", "Failed to fetch customer.")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}
	if !middleware.CurrentSession(c).ActsForCustomer(models.RoleCustomer, customerID) {
		respondForbidden(c, "No puede modificar otro cliente.")
		return
	}
	var req services.UpdateCustomerRequest
	if !bindJSON(c, &req, "UpdateCustomer") {
		return
	}
	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		h.respondCustomerError(c, err, "UpdateCustomer", "Failed to update customer.")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) ToggleCustomerStatus(c *gin.Context) {
	customerID, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}
	customer, err := h.customerService.ToggleCustomerStatus(c.Request.Context(), customerID)
	if err != nil {
		h.respondCustomerError(c, err, "ToggleCustomerStatus", "Failed to update customer.")
		return
	}
	c.JSON(http.StatusOK, customer)
}
