package tickets

import (
	"github.com/gin-gonic/gin"
)

func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller) {

	// VERIFIER OPERATIONS

	tickets := rg.Group("/tickets")
	{
		tickets.GET("/:id", controller.Lookup)        // GET /api/v1/tickets/:id
		tickets.POST("/:id/use", controller.MarkUsed) // POST /api/v1/tickets/:id/use
		tickets.GET("/:id/qr", controller.QRImage)    // GET /api/v1/tickets/:id/qr
	}

	// ADMIN OPERATIONS

	admin := rg.Group("/admin")
	{
		admin.GET("/bookings", controller.ListBookings)      // GET /api/v1/admin/bookings
		admin.POST("/tickets/:id/cancel", controller.Cancel) // POST /api/v1/admin/tickets/:id/cancel
	}
}
