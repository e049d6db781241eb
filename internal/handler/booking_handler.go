package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ameliakool/SCMS/internal/service"
	appErrors "github.com/ameliakool/SCMS/pkg/errors"
	"github.com/ameliakool/SCMS/pkg/response"
)

// BookingHandler manages booking endpoints.
type BookingHandler struct {
	service *service.BookingService
}

// NewBookingHandler constructs handler.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{service: svc}
}

// Create godoc
// @Summary Create booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body service.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	booking, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// Update godoc
// @Summary Edit booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param payload body service.UpdateBookingRequest true "Booking payload"
// @Success 200 {object} response.Envelope
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	var req service.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	booking, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Delete godoc
// @Summary Delete booking
// @Tags Bookings
// @Param id path string true "Booking ID"
// @Success 204 {object} nil
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List godoc
// @Summary List bookings across every classroom
// @Tags Bookings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	bookings := h.service.ListAll(c.Request.Context())
	response.JSON(c, http.StatusOK, bookings, nil)
}

// ListByRoom godoc
// @Summary List bookings for one classroom
// @Tags Bookings
// @Produce json
// @Param room path string true "Room number"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{room}/bookings [get]
func (h *BookingHandler) ListByRoom(c *gin.Context) {
	bookings, err := h.service.ListByRoom(c.Request.Context(), c.Param("room"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bookings, nil)
}
