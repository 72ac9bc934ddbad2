package controllers

import (
	"net/http"

	"github.com/Vinayyy19/Furnista/models"
	"github.com/Vinayyy19/Furnista/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartController struct {
	service services.CartService
}

func NewCartController(service services.CartService) *CartController {
	return &CartController{service: service}
}

// GetCart returns the current cart for a user
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	cart, err := cc.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds a product variant or increases its quantity
func (cc *CartController) AddItem(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(err))
		return
	}
	productID, _ := primitive.ObjectIDFromHex(req.ProductID)
	variantID, _ := primitive.ObjectIDFromHex(req.VariantID)

	cart, err := cc.service.AddItem(c.Request.Context(), userID, productID, variantID, req.Quantity)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateItem sets the quantity of a line already in the cart
func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(err))
		return
	}
	productID, _ := primitive.ObjectIDFromHex(req.ProductID)
	variantID, _ := primitive.ObjectIDFromHex(req.VariantID)

	cart, err := cc.service.UpdateItem(c.Request.Context(), userID, productID, variantID, req.Quantity)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem removes a specific item from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	productID, err := parseObjectID(c.Param("productId"), "product")
	if err != nil {
		_ = c.Error(err)
		return
	}
	variantID, err := parseObjectID(c.Param("variantId"), "variant")
	if err != nil {
		_ = c.Error(err)
		return
	}

	cart, err := cc.service.RemoveItem(c.Request.Context(), userID, productID, variantID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart removes all items from the cart
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	cart, err := cc.service.ClearCart(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
