package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/roamly/tour-booking-api/internal/core/ports"
)

// ResourceHandler serves the generic CRUD surface for the opaque-document
// collections (guides, reviews, stories, and package mutations). Each route
// maps to exactly one repository call; the store's documents pass through as
// the JSON response body, including null for a missing lookup.
type ResourceHandler struct {
	repo ports.Repository
}

func NewResourceHandler(repo ports.Repository) *ResourceHandler {
	return &ResourceHandler{repo: repo}
}

func (h *ResourceHandler) List(c echo.Context) error {
	docs, err := h.repo.FindAll(c.Request().Context(), nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *ResourceHandler) Get(c echo.Context) error {
	doc, err := h.repo.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *ResourceHandler) Create(c echo.Context) error {
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

func (h *ResourceHandler) Update(c echo.Context) error {
	var doc bson.M
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	delete(doc, "_id")

	modified, err := h.repo.Update(c.Request().Context(), c.Param("id"), doc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, modifiedResponse{ModifiedCount: modified})
}

func (h *ResourceHandler) Delete(c echo.Context) error {
	deleted, err := h.repo.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{DeletedCount: deleted})
}
