package stats

import (
	"github.com/gin-gonic/gin"
)

func SetupStatsRoutes(rg *gin.RouterGroup, controller *Controller) {

	// ADMIN OPERATIONS

	admin := rg.Group("/admin")
	{
		admin.GET("/stats", controller.GetDashboard) // GET /api/v1/admin/stats
	}
}
