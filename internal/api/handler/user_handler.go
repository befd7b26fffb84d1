package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamly/tour-booking-api/internal/core/ports"
)

// UserHandler serves the admin-facing user collection.
type UserHandler struct {
	repo ports.UserRepository
	auth ports.AuthService
}

func NewUserHandler(repo ports.UserRepository, auth ports.AuthService) *UserHandler {
	return &UserHandler{repo: repo, auth: auth}
}

// List returns every user document.
func (h *UserHandler) List(c echo.Context) error {
	docs, err := h.repo.FindAll(c.Request().Context(), nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user guide admin"`
}

// UpdateRole is the only operation that may change an account's role. The role
// enum is checked again in the auth service, so non-HTTP callers get the same
// guarantee.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	modified, err := h.auth.UpdateRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, modifiedResponse{ModifiedCount: modified})
}
