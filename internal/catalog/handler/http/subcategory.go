package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/catalog/service"
	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
	"github.com/dhruvil1809/ecommerce-backend/internal/validate"
)

type subCategoryRequest struct {
	CategoryID  uint   `json:"category_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Status      *bool  `json:"status"`
}

type updateSubCategoryRequest struct {
	CategoryID  *uint   `json:"category_id"`
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Status      *bool   `json:"status"`
}

func (h *CatalogHandler) ListSubCategories(c *fiber.Ctx) error {
	subCategories, err := h.catalog.ListSubCategories(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "SubCategories fetched successfully.", fiber.Map{
		"sub_categories": subCategories,
	})
}

func (h *CatalogHandler) CreateSubCategory(c *fiber.Ctx) error {
	var req subCategoryRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	subCategory, err := h.catalog.CreateSubCategory(c.UserContext(), service.SubCategoryInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Status:      req.Status,
	})
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusCreated, "SubCategory created successfully.", subCategory)
}

func (h *CatalogHandler) UpdateSubCategory(c *fiber.Ctx) error {
	var req updateSubCategoryRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	subCategory, err := h.catalog.UpdateSubCategory(c.UserContext(), c.Params("slug"), service.UpdateSubCategoryInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Status:      req.Status,
	})
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "SubCategory updated successfully.", subCategory)
}

func (h *CatalogHandler) DeleteSubCategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteSubCategory(c.UserContext(), c.Params("slug")); err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "SubCategory deleted successfully.", nil)
}
