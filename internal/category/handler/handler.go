package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/internal/category"
	"github.com/quickserve/catalog-service/internal/category/dto"
	"github.com/quickserve/catalog-service/internal/httperr"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger *zap.Logger
}

func NewCategoryHandler(uc category.UseCase, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) MapRoutes(e *echo.Echo) {
	e.POST("/categories", h.CreateCategory)
	e.GET("/categories", h.ListCategories)
	e.GET("/categories/:id", h.GetCategory)
	e.PUT("/categories/:id", h.UpdateCategory)
	e.DELETE("/categories/:id", h.DeleteCategory)
}

type categoryRequest struct {
	Name             string   `json:"name" validate:"required"`
	Image            *string  `json:"image"`
	Description      *string  `json:"description"`
	TaxApplicability bool     `json:"taxApplicability"`
	Tax              *float64 `json:"tax" validate:"omitempty,gte=0"`
	TaxType          *string  `json:"taxType"`
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return httperr.BadRequest(c, err)
	}

	cat, err := h.uc.CreateCategory(c.Request().Context(), &dto.CreateCategoryInput{
		Name:             req.Name,
		Image:            req.Image,
		Description:      req.Description,
		TaxApplicability: req.TaxApplicability,
		Tax:              req.Tax,
		TaxType:          req.TaxType,
	})
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := httperr.ParseIDParam(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err)
	}

	cat, err := h.uc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := httperr.ParseIDParam(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err)
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return httperr.BadRequest(c, err)
	}

	cat, err := h.uc.UpdateCategory(c.Request().Context(), &dto.UpdateCategoryInput{
		ID:               id,
		Name:             req.Name,
		Image:            req.Image,
		Description:      req.Description,
		TaxApplicability: req.TaxApplicability,
		Tax:              req.Tax,
		TaxType:          req.TaxType,
	})
	if err != nil {
		h.logger.Error("failed to update category", zap.Int64("id", id), zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := httperr.ParseIDParam(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err)
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		h.logger.Error("failed to delete category", zap.Int64("id", id), zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
