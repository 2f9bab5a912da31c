package events

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

// GetUpcomingEvents handles GET /api/v1/events
func (c *Controller) GetUpcomingEvents(ctx *gin.Context) {
	result, err := c.service.GetUpcomingEvents(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list events", err.Error())
		return
	}
	response.Success(ctx, "Events retrieved successfully", result)
}

// GetEvent handles GET /api/v1/events/:id
func (c *Controller) GetEvent(ctx *gin.Context) {
	event, err := c.service.GetEventByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to get event", err.Error())
		return
	}
	response.Success(ctx, "Event retrieved successfully", event)
}

// GetAllEvents handles GET /api/v1/admin/events
func (c *Controller) GetAllEvents(ctx *gin.Context) {
	result, err := c.service.GetAllEventsWithSales(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list events", err.Error())
		return
	}
	response.Success(ctx, "Events retrieved successfully", result)
}

// CreateEvent handles POST /api/v1/admin/events
func (c *Controller) CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	event, err := c.service.CreateEvent(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Failed to create event", err.Error())
		return
	}
	response.Created(ctx, "Event created successfully", event)
}

// UpdateEvent handles PUT /api/v1/admin/events/:id
func (c *Controller) UpdateEvent(ctx *gin.Context) {
	var req UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	event, err := c.service.UpdateEvent(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to update event", err.Error())
		return
	}
	response.Success(ctx, "Event updated successfully", event)
}

// DeleteEvent handles DELETE /api/v1/admin/events/:id
func (c *Controller) DeleteEvent(ctx *gin.Context) {
	if err := c.service.DeleteEvent(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to delete event", err.Error())
		return
	}
	response.Success(ctx, "Event deleted successfully", nil)
}
