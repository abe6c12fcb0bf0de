package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"arbatai/internal/models"
	"arbatai/internal/services"
)

// ProductHandlers handles product-related HTTP requests
type ProductHandlers struct {
	catalogSvc services.CatalogService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(catalogSvc services.CatalogService) *ProductHandlers {
	return &ProductHandlers{catalogSvc: catalogSvc}
}

// CreateProduct handles creating a new product
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req models.ProductInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	product, err := h.catalogSvc.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusCreated, product)
}

// DeleteProduct removes a product. Deleting an unknown id succeeds.
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	if err := h.catalogSvc.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return domainHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
