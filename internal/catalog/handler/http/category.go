package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/catalog/service"
	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
	"github.com/dhruvil1809/ecommerce-backend/internal/validate"
)

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Status      *bool  `json:"status"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Status      *bool   `json:"status"`
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Categories fetched successfully.", fiber.Map{
		"categories": categories,
	})
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	category, err := h.catalog.CreateCategory(c.UserContext(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Status:      req.Status,
	})
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusCreated, "Category created successfully.", category)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var req updateCategoryRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	category, err := h.catalog.UpdateCategory(c.UserContext(), c.Params("slug"), service.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Status:      req.Status,
	})
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Category updated successfully.", category)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.UserContext(), c.Params("slug")); err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Category deleted successfully.", nil)
}
