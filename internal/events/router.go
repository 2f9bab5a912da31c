package events

import (
	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {

	// PUBLIC EVENT OPERATIONS

	events := rg.Group("/events")
	{
		events.GET("", controller.GetUpcomingEvents) // GET /api/v1/events
		events.GET("/:id", controller.GetEvent)      // GET /api/v1/events/:id
	}

	// ADMIN EVENT OPERATIONS

	admin := rg.Group("/admin/events")
	{
		admin.GET("", controller.GetAllEvents)       // GET /api/v1/admin/events
		admin.POST("", controller.CreateEvent)       // POST /api/v1/admin/events
		admin.PUT("/:id", controller.UpdateEvent)    // PUT /api/v1/admin/events/:id
		admin.DELETE("/:id", controller.DeleteEvent) // DELETE /api/v1/admin/events/:id
	}
}
