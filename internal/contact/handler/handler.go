package handler

import (
	"net/http"
	"time"

	"drishti_backend/internal/booking"
	"drishti_backend/internal/contact/service"
	"drishti_backend/internal/contact/transport"
	"drishti_backend/platform/apperr"
	"drishti_backend/platform/httpkit"
	"drishti_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput    = "Invalid input"
	msgInvalidCalendar = "Invalid year or month"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/contact", h.Submit)

	bookingGroup := api.Group("/booking")
	bookingGroup.GET("/slots", h.Slots)
	bookingGroup.GET("/calendar", h.Calendar)
}

func (h *Handler) Submit(c *gin.Context) {
	var lead booking.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidInput))
		return
	}

	id, err := h.svc.Submit(c.Request.Context(), lead)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SubmitResponse{
		Success: true,
		Data:    transport.SubmitData{ID: id},
	})
}

func (h *Handler) Slots(c *gin.Context) {
	httpkit.OK(c, h.svc.Slots())
}

func (h *Handler) Calendar(c *gin.Context) {
	var q transport.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidCalendar))
		return
	}
	if err := h.val.Struct(q); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidCalendar))
		return
	}

	httpkit.JSON(c, http.StatusOK, h.svc.Calendar(q.Year, time.Month(q.Month)))
}
