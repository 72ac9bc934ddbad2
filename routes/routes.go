package routes

import (
	"net/http"

	"github.com/Vinayyy19/Furnista/common/middleware"
	"github.com/Vinayyy19/Furnista/controllers"
	"github.com/gin-gonic/gin"
)

// Handlers groups the controllers mounted by RegisterRoutes.
type Handlers struct {
	Cart    *controllers.CartController
	Orders  *controllers.OrderController
	Admin   *controllers.AdminController
	Contact *controllers.ContactController
	Media   *controllers.MediaController
}

func RegisterRoutes(r *gin.Engine, h Handlers, verifier middleware.TokenVerifier) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "furnista"})
	})

	authenticated := middleware.Authenticate(verifier)

	cart := r.Group("/cart")
	cart.Use(authenticated)
	{
		cart.GET("", h.Cart.GetCart)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items", h.Cart.UpdateItem)
		cart.DELETE("/items/:productId/:variantId", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.ClearCart)
	}

	orders := r.Group("/orders")
	orders.Use(authenticated)
	{
		orders.POST("/payment-intent", h.Orders.CreatePaymentIntent)
		orders.POST("/verify", h.Orders.VerifyPayment)
		orders.GET("", h.Orders.ListMyOrders)
		orders.GET("/:id", h.Orders.GetOrder)
	}

	contact := r.Group("/contact")
	{
		contact.POST("", h.Contact.SubmitContact)
		contact.POST("/bulk-order", h.Contact.SubmitBulkOrder)
	}

	admin := r.Group("/admin")
	admin.Use(authenticated, middleware.RequireAdmin())
	{
		admin.GET("/orders", h.Admin.ListOrders)
		admin.PATCH("/orders/:id/status", h.Admin.UpdateOrderStatus)
		admin.DELETE("/orders/:id", h.Admin.DeleteOrder)
		admin.GET("/contact", h.Admin.ListMessages)
		admin.POST("/media", h.Media.Upload)
		admin.POST("/media/presign", h.Media.Presign)
	}
}
