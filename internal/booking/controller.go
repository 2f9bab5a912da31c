package booking

import (
	"errors"
	"net/http"

	"hallbook/internal/events"
	"hallbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreatePayment handles POST /api/v1/payments
func (c *Controller) CreatePayment(ctx *gin.Context) {
	var req CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	result, err := c.service.CreatePayment(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.Created(ctx, "Payment session created", result)
}

// GetPayment handles GET /api/v1/payments/:id
func (c *Controller) GetPayment(ctx *gin.Context) {
	result, err := c.service.GetPayment(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.Success(ctx, "Payment session retrieved", result)
}

// ConfirmPayment handles POST /api/v1/payments/confirm
func (c *Controller) ConfirmPayment(ctx *gin.Context) {
	var req ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	result, err := c.service.ConfirmPayment(ctx.Request.Context(), req.PaymentID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.Created(ctx, "Booking confirmed", result)
}

// BookDirect handles POST /api/v1/book
func (c *Controller) BookDirect(ctx *gin.Context) {
	var req DirectBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	result, err := c.service.BookDirect(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.Created(ctx, "Booking confirmed", result)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		response.Error(ctx, http.StatusConflict, "Selected seats are no longer available",
			gin.H{"seats": conflict.Labels})
	case errors.Is(err, ErrEmptySelection):
		response.Error(ctx, http.StatusBadRequest, "No seats selected", nil)
	case errors.Is(err, ErrSeatNotFound):
		response.Error(ctx, http.StatusBadRequest, "Unknown seat in selection", err.Error())
	case errors.Is(err, events.ErrNotFound):
		response.Error(ctx, http.StatusNotFound, "Event not found", nil)
	case errors.Is(err, ErrNotFoundOrExpired):
		response.Error(ctx, http.StatusNotFound, "Payment session not found or expired", nil)
	default:
		response.Error(ctx, http.StatusInternalServerError, "Booking failed", err.Error())
	}
}
