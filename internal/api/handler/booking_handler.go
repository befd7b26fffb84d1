package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roamly/tour-booking-api/internal/core/domain"
	"github.com/roamly/tour-booking-api/internal/core/ports"
)

type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	Email      string    `json:"email" validate:"required,email"`
	PackageRef string    `json:"package_ref" validate:"required"`
	GuestCount int       `json:"guest_count" validate:"omitempty,gt=0"`
	TourDate   time.Time `json:"tour_date"`
	Status     string    `json:"status" validate:"omitempty,oneof=Pending Accepted Rejected"`
}

type createBookingResponse struct {
	InsertedID string `json:"insertedId"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Accepted Rejected"`
}

type modifiedResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

type deletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Create books a tour package and triggers a booking:created notification.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      200   {object}  createBookingResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		Email:      req.Email,
		PackageRef: req.PackageRef,
		GuestCount: req.GuestCount,
		TourDate:   req.TourDate,
		Status:     domain.BookingStatus(req.Status),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, createBookingResponse{InsertedID: id})
}

// ByEmail lists bookings for an email. An unknown email yields an empty array.
//
// @Summary      List bookings by email
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Booking email"
// @Success      200    {array}   domain.Booking
// @Router       /bookings/email/{email} [get]
func (h *BookingHandler) ByEmail(c echo.Context) error {
	bookings, err := h.service.FindByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// UpdateStatus moves a booking between Pending, Accepted, and Rejected.
//
// @Summary      Update booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Booking id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  modifiedResponse
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	modified, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, modifiedResponse{ModifiedCount: modified})
}

// Delete removes a booking. Deleting an absent booking is an idempotent no-op
// with a zero count.
//
// @Summary      Delete a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Booking id"
// @Success      200 {object}  deletedResponse
// @Failure      400 {object}  map[string]string
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	deleted, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{DeletedCount: deleted})
}
