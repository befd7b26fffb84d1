package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/roamly/tour-booking-api/internal/core/ports"
)

// PackageHandler serves the tour-package catalog through the package service.
type PackageHandler struct {
	service ports.PackageService
}

func NewPackageHandler(service ports.PackageService) *PackageHandler {
	return &PackageHandler{service: service}
}

// List returns every tour package.
func (h *PackageHandler) List(c echo.Context) error {
	docs, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

// Get returns one package, or a null body when it does not exist.
func (h *PackageHandler) Get(c echo.Context) error {
	doc, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Create inserts a new tour package.
func (h *PackageHandler) Create(c echo.Context) error {
	var doc bson.M
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id, err := h.service.Create(c.Request().Context(), doc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"insertedId": id})
}
