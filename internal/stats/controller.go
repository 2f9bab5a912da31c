package stats

import (
	"net/http"

	"hallbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetDashboard handles GET /api/v1/admin/stats
func (c *Controller) GetDashboard(ctx *gin.Context) {
	dashboard, err := c.service.GetDashboard(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to load dashboard", err.Error())
		return
	}
	response.Success(ctx, "Dashboard retrieved successfully", dashboard)
}
