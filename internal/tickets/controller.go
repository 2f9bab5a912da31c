package tickets

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

// Lookup handles GET /api/v1/tickets/:id
func (c *Controller) Lookup(ctx *gin.Context) {
	result, err := c.service.Lookup(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			ctx.JSON(http.StatusNotFound, VerificationResponse{Valid: false})
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to look up ticket", err.Error())
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// MarkUsed handles POST /api/v1/tickets/:id/use
func (c *Controller) MarkUsed(ctx *gin.Context) {
	ticket, err := c.service.MarkUsed(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(ctx, http.StatusNotFound, "Ticket not found", nil)
		case errors.Is(err, ErrInvalidState):
			response.Error(ctx, http.StatusConflict, "Ticket cannot be used", err.Error())
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to mark ticket used", err.Error())
		}
		return
	}
	response.Success(ctx, "Ticket marked as used", ticket)
}

// Cancel handles POST /api/v1/admin/tickets/:id/cancel
func (c *Controller) Cancel(ctx *gin.Context) {
	ticket, err := c.service.Cancel(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(ctx, http.StatusNotFound, "Ticket not found", nil)
		case errors.Is(err, ErrInvalidState):
			response.Error(ctx, http.StatusConflict, "Ticket cannot be cancelled", err.Error())
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to cancel ticket", err.Error())
		}
		return
	}
	response.Success(ctx, "Ticket cancelled", ticket)
}

// QRImage handles GET /api/v1/tickets/:id/qr
func (c *Controller) QRImage(ctx *gin.Context) {
	img, err := c.service.QRImage(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(ctx, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to render QR code", err.Error())
		return
	}
	ctx.Data(http.StatusOK, "image/jpeg", img)
}

// ListBookings handles GET /api/v1/admin/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	result, err := c.service.ListBookings(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	response.Success(ctx, "Bookings retrieved successfully", result)
}
