package seats

import (
	"errors"
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

// eventIDParam resolves the event id from either the public or the admin
// route shape.
func eventIDParam(ctx *gin.Context) string {
	if id := ctx.Param("eventId"); id != "" {
		return id
	}
	return ctx.Param("id")
}

// GetSeatsByEvent handles GET /api/v1/seats/event/:eventId
func (c *Controller) GetSeatsByEvent(ctx *gin.Context) {
	result, err := c.service.ListSeats(ctx.Request.Context(), eventIDParam(ctx))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Failed to list seats", err.Error())
		return
	}
	response.Success(ctx, "Seats retrieved successfully", result)
}

// UpdateSeat handles PUT /api/v1/admin/seats/:id
func (c *Controller) UpdateSeat(ctx *gin.Context) {
	var req UpdateSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	seat, err := c.service.UpdateSeat(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(ctx, http.StatusNotFound, "Seat not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to update seat", err.Error())
		return
	}
	response.Success(ctx, "Seat updated successfully", seat)
}

// DeleteSeat handles DELETE /api/v1/admin/seats/:id
func (c *Controller) DeleteSeat(ctx *gin.Context) {
	if err := c.service.DeleteSeat(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(ctx, http.StatusNotFound, "Seat not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to delete seat", err.Error())
		return
	}
	response.Success(ctx, "Seat deleted successfully", nil)
}

// ClearSeats handles DELETE /api/v1/admin/events/:eventId/seats
func (c *Controller) ClearSeats(ctx *gin.Context) {
	if err := c.service.ClearSeats(ctx.Request.Context(), eventIDParam(ctx)); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Failed to clear seats", err.Error())
		return
	}
	response.Success(ctx, "Seats cleared successfully", nil)
}

// BulkGenerate handles POST /api/v1/admin/events/:eventId/seats/bulk
func (c *Controller) BulkGenerate(ctx *gin.Context) {
	var req BulkGenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := c.service.BulkGenerate(ctx.Request.Context(), eventIDParam(ctx), req)
	if err != nil {
		if errors.Is(err, ErrConfig) {
			response.Error(ctx, http.StatusBadRequest, "Invalid seat map parameters", err.Error())
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to generate seats", err.Error())
		return
	}
	response.Created(ctx, "Seat map generated successfully", gin.H{"seats_created": created})
}
