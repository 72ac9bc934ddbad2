package controllers

import (
	"net/http"

	"github.com/Vinayyy19/Furnista/models"
	"github.com/Vinayyy19/Furnista/services"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	orders   services.OrderService
	contacts services.ContactService
}

func NewAdminController(orders services.OrderService, contacts services.ContactService) *AdminController {
	return &AdminController{orders: orders, contacts: contacts}
}

func (ac *AdminController) ListOrders(c *gin.Context) {
	page, limit, err := ParsePagination(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	list, err := ac.orders.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := parseObjectID(c.Param("id"), "order")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(err))
		return
	}

	order, err := ac.orders.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

func (ac *AdminController) DeleteOrder(c *gin.Context) {
	orderID, err := parseObjectID(c.Param("id"), "order")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := ac.orders.Delete(c.Request.Context(), orderID); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

func (ac *AdminController) ListMessages(c *gin.Context) {
	page, limit, err := ParsePagination(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	list, err := ac.contacts.ListMessages(c.Request.Context(), page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}
