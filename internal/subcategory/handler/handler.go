package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/internal/httperr"
	"github.com/quickserve/catalog-service/internal/subcategory"
	"github.com/quickserve/catalog-service/internal/subcategory/dto"
)

type SubCategoryHandler struct {
	uc     subcategory.UseCase
	logger *zap.Logger
}

func NewSubCategoryHandler(uc subcategory.UseCase, log *zap.Logger) *SubCategoryHandler {
	return &SubCategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SubCategoryHandler) MapRoutes(e *echo.Echo) {
	e.POST("/categories/:categoryId/subcategories", h.CreateSubCategory)
	e.GET("/subcategories", h.ListSubCategories)
	e.GET("/subcategories/:id", h.GetSubCategory)
	e.PUT("/subcategories/:id", h.UpdateSubCategory)
	e.DELETE("/subcategories/:id", h.DeleteSubCategory)
}

type subCategoryRequest struct {
	Name             string   `json:"name" validate:"required"`
	Image            *string  `json:"image"`
	Description      *string  `json:"description"`
	TaxApplicability bool     `json:"taxApplicability"`
	Tax              *float64 `json:"tax" validate:"omitempty,gte=0"`
}

func (h *SubCategoryHandler) CreateSubCategory(c echo.Context) error {
	categoryID, err := httperr.ParseIDParam(c, "categoryId")
	if err != nil {
		return httperr.BadRequest(c, err)
	}

	var req subCategoryRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return httperr.BadRequest(c, err)
	}

	sub, err := h.uc.CreateSubCategory(c.Request().Context(), &dto.CreateSubCategoryInput{
		CategoryID:       categoryID,
		Name:             req.Name,
		Image:            req.Image,
		Description:      req.Description,
		TaxApplicability: req.TaxApplicability,
		Tax:              req.Tax,
	})
	if err != nil {
		h.logger.Error("failed to create subcategory", zap.Int64("category_id", categoryID), zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusCreated, sub)
}

func (h *SubCategoryHandler) ListSubCategories(c echo.Context) error {
	subs, err := h.uc.ListSubCategories(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list subcategories", zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, subs)
}

func (h *SubCategoryHandler) GetSubCategory(c echo.Context) error {
	id, err := httperr.ParseIDParam(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err)
	}

	sub, err := h.uc.GetSubCategory(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, sub)
}

func (h *SubCategoryHandler) UpdateSubCategory(c echo.Context) error {
	id, err := httperr.ParseIDParam(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err)
	}

	var req subCategoryRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return httperr.BadRequest(c, err)
	}

	sub, err := h.uc.UpdateSubCategory(c.Request().Context(), &dto.UpdateSubCategoryInput{
		ID:               id,
		Name:             req.Name,
		Image:            req.Image,
		Description:      req.Description,
		TaxApplicability: req.TaxApplicability,
		Tax:              req.Tax,
	})
	if err != nil {
		h.logger.Error("failed to update subcategory", zap.Int64("id", id), zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, sub)
}

func (h *SubCategoryHandler) DeleteSubCategory(c echo.Context) error {
	id, err := httperr.ParseIDParam(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err)
	}

	if err := h.uc.DeleteSubCategory(c.Request().Context(), id); err != nil {
		h.logger.Error("failed to delete subcategory", zap.Int64("id", id), zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
