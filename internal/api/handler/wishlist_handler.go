package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/roamly/tour-booking-api/internal/core/ports"
)

// WishlistHandler serves wish-lists, which are additionally keyed on the
// owning user's email.
type WishlistHandler struct {
	repo ports.WishlistRepository
}

func NewWishlistHandler(repo ports.WishlistRepository) *WishlistHandler {
	return &WishlistHandler{repo: repo}
}

// ByUserEmail lists a user's wish-list entries.
func (h *WishlistHandler) ByUserEmail(c echo.Context) error {
	docs, err := h.repo.FindByUserEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

// Create adds an entry to a user's wish-list.
func (h *WishlistHandler) Create(c echo.Context) error {
	var doc bson.M
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id, err := h.repo.Create(c.Request().Context(), doc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"insertedId": id})
}

// Delete removes a wish-list entry.
func (h *WishlistHandler) Delete(c echo.Context) error {
	deleted, err := h.repo.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{DeletedCount: deleted})
}
