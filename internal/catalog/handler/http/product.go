package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/dhruvil1809/ecommerce-backend/internal/catalog/service"
	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
	"github.com/dhruvil1809/ecommerce-backend/internal/validate"
)

type productRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	Description   string          `json:"description"`
	RegularPrice  decimal.Decimal `json:"regular_price" validate:"required"`
	SalePrice     decimal.Decimal `json:"sale_price" validate:"required"`
	Sizes         []string        `json:"sizes"`
	Colors        []string        `json:"colors"`
	CategoryID    *uint           `json:"category_id"`
	SubCategoryID *uint           `json:"sub_category_id"`
	Gender        string          `json:"gender"`
	ProductCode   string          `json:"product_code"`
	ProductSKU    string          `json:"product_sku"`
	Tags          []string        `json:"tags"`
	Quantity      int             `json:"quantity" validate:"gte=0"`
	Status        *bool           `json:"status"`
	Images        []string        `json:"images"`
}

type updateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,max=200"`
	Description   *string          `json:"description"`
	RegularPrice  *decimal.Decimal `json:"regular_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Sizes         *[]string        `json:"sizes"`
	Colors        *[]string        `json:"colors"`
	CategoryID    *uint            `json:"category_id"`
	SubCategoryID *uint            `json:"sub_category_id"`
	Gender        *string          `json:"gender"`
	ProductCode   *string          `json:"product_code"`
	ProductSKU    *string          `json:"product_sku"`
	Tags          *[]string        `json:"tags"`
	Quantity      *int             `json:"quantity" validate:"omitempty,gte=0"`
	Status        *bool            `json:"status"`
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Products fetched successfully.", fiber.Map{
		"products": products,
	})
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.GetProduct(c.UserContext(), c.Params("slug"))
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Product fetched successfully.", product)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	product, err := h.catalog.CreateProduct(c.UserContext(), service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		RegularPrice:  req.RegularPrice,
		SalePrice:     req.SalePrice,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		Gender:        req.Gender,
		ProductCode:   req.ProductCode,
		ProductSKU:    req.ProductSKU,
		Tags:          req.Tags,
		Quantity:      req.Quantity,
		Status:        req.Status,
		Images:        req.Images,
	})
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusCreated, "Product created successfully.", product)
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var req updateProductRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	product, err := h.catalog.UpdateProduct(c.UserContext(), c.Params("slug"), service.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		RegularPrice:  req.RegularPrice,
		SalePrice:     req.SalePrice,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		Gender:        req.Gender,
		ProductCode:   req.ProductCode,
		ProductSKU:    req.ProductSKU,
		Tags:          req.Tags,
		Quantity:      req.Quantity,
		Status:        req.Status,
	})
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Product updated successfully.", product)
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.UserContext(), c.Params("slug")); err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Product deleted successfully.", nil)
}
