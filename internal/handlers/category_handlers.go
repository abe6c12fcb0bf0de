package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"arbatai/internal/common"
	"arbatai/internal/services"
)

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	catalogSvc services.CatalogService
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(catalogSvc services.CatalogService) *CategoryHandlers {
	return &CategoryHandlers{catalogSvc: catalogSvc}
}

// CreateCategoryRequest represents the category creation request payload
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory handles creating a new category
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	category, err := h.catalogSvc.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusCreated, category)
}

// DeleteCategory removes a category and all products referencing it.
// Deleting an unknown id succeeds.
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	if err := h.catalogSvc.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return domainHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// domainHTTPError maps tagged domain errors onto HTTP statuses; anything
// unrecognized is a 500.
func domainHTTPError(err error) error {
	switch {
	case common.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case common.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
