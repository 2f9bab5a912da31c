package seats

import (
	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {

	// PUBLIC SEAT OPERATIONS

	seats := rg.Group("/seats")
	{
		seats.GET("/event/:eventId", controller.GetSeatsByEvent) // GET /api/v1/seats/event/:eventId
	}

	// ADMIN SEAT OPERATIONS

	// Admin event paths share the :id param with the events router.
	admin := rg.Group("/admin")
	{
		admin.GET("/events/:id/seats", controller.GetSeatsByEvent)    // GET /api/v1/admin/events/:id/seats
		admin.POST("/events/:id/seats/bulk", controller.BulkGenerate) // POST /api/v1/admin/events/:id/seats/bulk
		admin.DELETE("/events/:id/seats", controller.ClearSeats)      // DELETE /api/v1/admin/events/:id/seats
		admin.PUT("/seats/:id", controller.UpdateSeat)                // PUT /api/v1/admin/seats/:id
		admin.DELETE("/seats/:id", controller.DeleteSeat)             // DELETE /api/v1/admin/seats/:id
	}
}
