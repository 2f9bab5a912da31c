package booking

import (
	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {

	// PUBLIC BOOKING OPERATIONS

	rg.POST("/book", controller.BookDirect) // POST /api/v1/book

	payments := rg.Group("/payments")
	{
		payments.POST("", controller.CreatePayment)          // POST /api/v1/payments
		payments.GET("/:id", controller.GetPayment)          // GET /api/v1/payments/:id
		payments.POST("/confirm", controller.ConfirmPayment) // POST /api/v1/payments/confirm
	}
}
