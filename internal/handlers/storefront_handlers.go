package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"arbatai/internal/services"
)

// StorefrontHandlers serves the public, read-only catalog view
type StorefrontHandlers struct {
	catalogSvc services.CatalogService
}

// NewStorefrontHandlers creates a new storefront handlers instance
func NewStorefrontHandlers(catalogSvc services.CatalogService) *StorefrontHandlers {
	return &StorefrontHandlers{catalogSvc: catalogSvc}
}

// GetCatalog returns the filtered, sorted public catalog. No auth required.
func (h *StorefrontHandlers) GetCatalog(c echo.Context) error {
	catalog, err := h.catalogSvc.PublicCatalog(c.Request().Context())
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, catalog)
}
