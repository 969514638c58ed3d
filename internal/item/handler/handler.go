package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/internal/httperr"
	"github.com/quickserve/catalog-service/internal/item"
	"github.com/quickserve/catalog-service/internal/item/dto"
)

type ItemHandler struct {
	uc     item.UseCase
	logger *zap.Logger
}

func NewItemHandler(uc item.UseCase, log *zap.Logger) *ItemHandler {
	return &ItemHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ItemHandler) MapRoutes(e *echo.Echo) {
	e.POST("/items", h.CreateItem)
	e.GET("/items", h.ListItems)
	e.GET("/items/search", h.SearchItems)
	e.GET("/items/:id", h.GetItem)
	e.PUT("/items/:id", h.UpdateItem)
	e.DELETE("/items/:id", h.DeleteItem)
}

type itemRequest struct {
	Name             string   `json:"name" validate:"required"`
	Image            *string  `json:"image"`
	Description      *string  `json:"description"`
	TaxApplicability bool     `json:"taxApplicability"`
	Tax              *float64 `json:"tax" validate:"omitempty,gte=0"`
	BaseAmount       float64  `json:"baseAmount" validate:"gte=0"`
	Discount         float64  `json:"discount" validate:"gte=0"`
	TotalAmount      float64  `json:"totalAmount" validate:"gte=0"`
	CategoryID       *int64   `json:"categoryId"`
	SubCategoryID    *int64   `json:"subCategoryId"`
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return httperr.BadRequest(c, err)
	}

	it, err := h.uc.CreateItem(c.Request().Context(), &dto.CreateItemInput{
		Name:             req.Name,
		Image:            req.Image,
		Description:      req.Description,
		TaxApplicability: req.TaxApplicability,
		Tax:              req.Tax,
		BaseAmount:       req.BaseAmount,
		Discount:         req.Discount,
		TotalAmount:      req.TotalAmount,
		CategoryID:       req.CategoryID,
		SubCategoryID:    req.SubCategoryID,
	})
	if err != nil {
		h.logger.Error("failed to create item", zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusCreated, it)
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	items, err := h.uc.ListItems(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) SearchItems(c echo.Context) error {
	items, err := h.uc.SearchItems(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		h.logger.Error("failed to search items", zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := httperr.ParseIDParam(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err)
	}

	it, err := h.uc.GetItem(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, it)
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	id, err := httperr.ParseIDParam(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err)
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return httperr.BadRequest(c, err)
	}

	it, err := h.uc.UpdateItem(c.Request().Context(), &dto.UpdateItemInput{
		ID:               id,
		Name:             req.Name,
		Image:            req.Image,
		Description:      req.Description,
		TaxApplicability: req.TaxApplicability,
		Tax:              req.Tax,
		BaseAmount:       req.BaseAmount,
		Discount:         req.Discount,
		TotalAmount:      req.TotalAmount,
	})
	if err != nil {
		h.logger.Error("failed to update item", zap.Int64("id", id), zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, it)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	id, err := httperr.ParseIDParam(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err)
	}

	if err := h.uc.DeleteItem(c.Request().Context(), id); err != nil {
		h.logger.Error("failed to delete item", zap.Int64("id", id), zap.Error(err))
		return httperr.JSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
