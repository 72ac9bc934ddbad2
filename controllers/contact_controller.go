package controllers

import (
	"net/http"

	"github.com/Vinayyy19/Furnista/models"
	"github.com/Vinayyy19/Furnista/services"
	"github.com/gin-gonic/gin"
)

type ContactController struct {
	service services.ContactService
}

func NewContactController(service services.ContactService) *ContactController {
	return &ContactController{service: service}
}

func (cc *ContactController) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(err))
		return
	}

	msg, err := cc.service.SubmitContact(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thanks, we will get back to you shortly", "id": msg.ID})
}

func (cc *ContactController) SubmitBulkOrder(c *gin.Context) {
	var req models.BulkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(err))
		return
	}

	msg, err := cc.service.SubmitBulkOrder(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bulk order enquiry received", "id": msg.ID})
}
