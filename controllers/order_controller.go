package controllers

import (
	"net/http"

	"github.com/Vinayyy19/Furnista/models"
	"github.com/Vinayyy19/Furnista/services"
	"github.com/gin-gonic/gin"
)

// OrderController serves the shopper side of checkout and order history.
type OrderController struct {
	checkout services.CheckoutService
	orders   services.OrderService
}

func NewOrderController(checkout services.CheckoutService, orders services.OrderService) *OrderController {
	return &OrderController{checkout: checkout, orders: orders}
}

func (oc *OrderController) CreatePaymentIntent(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	intent, err := oc.checkout.CreatePaymentIntent(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

// VerifyPayment books the order for a confirmed payment. A replayed
// confirmation answers 200 with the original order.
func (oc *OrderController) VerifyPayment(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(err))
		return
	}

	result, err := oc.checkout.VerifyAndPlaceOrder(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusCreated
	message := "Order placed successfully"
	if result.Duplicate {
		status = http.StatusOK
		message = "Order already placed"
	}
	c.JSON(status, gin.H{
		"message":   message,
		"order_id":  result.OrderID,
		"pricing":   result.Pricing,
		"duplicate": result.Duplicate,
	})
}

func (oc *OrderController) ListMyOrders(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page, limit, err := ParsePagination(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	list, err := oc.orders.ListMine(c.Request.Context(), userID, page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	orderID, err := parseObjectID(c.Param("id"), "order")
	if err != nil {
		_ = c.Error(err)
		return
	}

	order, err := oc.orders.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}
