package service

import (
	"context"
	"errors"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/cache"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type ProductInput struct {
	Name          string
	Description   string
	RegularPrice  decimal.Decimal
	SalePrice     decimal.Decimal
	Sizes         []string
	Colors        []string
	CategoryID    *uint
	SubCategoryID *uint
	Gender        string
	ProductCode   string
	ProductSKU    string
	Tags          []string
	Quantity      int
	Status        *bool
	Images        []string
}

type UpdateProductInput struct {
	Name          *string
	Description   *string
	RegularPrice  *decimal.Decimal
	SalePrice     *decimal.Decimal
	Sizes         *[]string
	Colors        *[]string
	CategoryID    *uint
	SubCategoryID *uint
	Gender        *string
	ProductCode   *string
	ProductSKU    *string
	Tags          *[]string
	Quantity      *int
	Status        *bool
}

// ListProducts serves the default first page from the cache when
// possible; concurrent misses collapse into one database read.
func (s *CatalogService) ListProducts(ctx context.Context, page Pagination) ([]models.Product, error) {
	limit, offset := page.normalize()

	if !page.isFirstPage() {
		return s.products.List(ctx, limit, offset)
	}

	var cached []models.Product
	if err := s.cache.Get(ctx, productListCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		return s.products.List(ctx, limit, offset)
	}

	result, err, _ := s.sfGroup.Do(productListCacheKey, func() (interface{}, error) {
		products, err := s.products.List(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, productListCacheKey, products, productListCacheTTL)
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Product), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productSlug string) (*models.Product, error) {
	product, err := s.products.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, apperrors.WithField(apperrors.KindNotFound, "product", "Product not found.")
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	exists, err := s.products.ExistsByName(ctx, input.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.WithField(apperrors.KindConflict, "name", "A product with this name already exists.")
	}

	if err := s.checkParents(ctx, input.CategoryID, input.SubCategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          input.Name,
		Slug:          slug.Make(input.Name),
		Description:   input.Description,
		RegularPrice:  input.RegularPrice,
		SalePrice:     input.SalePrice,
		Sizes:         models.StringList(input.Sizes),
		Colors:        models.StringList(input.Colors),
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
		Gender:        input.Gender,
		ProductCode:   input.ProductCode,
		ProductSKU:    input.ProductSKU,
		Tags:          models.StringList(input.Tags),
		Quantity:      input.Quantity,
		Status:        true,
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	for _, image := range input.Images {
		product.Images = append(product.Images, models.ProductImage{Image: image})
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateProductCache(ctx)
	return product, nil
}

func (s *CatalogService) checkParents(ctx context.Context, categoryID, subCategoryID *uint) error {
	if categoryID != nil {
		ok, err := s.categories.ExistsByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.WithField(apperrors.KindValidation, "category", "Category does not exist.")
		}
	}
	if subCategoryID != nil {
		ok, err := s.subCategories.ExistsByID(ctx, *subCategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.WithField(apperrors.KindValidation, "sub_category", "SubCategory does not exist.")
		}
	}
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, productSlug string, input UpdateProductInput) (*models.Product, error) {
	if _, err := s.products.GetBySlug(ctx, productSlug); err != nil {
		return nil, apperrors.WithField(apperrors.KindNotFound, "product", "Product not found.")
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		exists, err := s.products.ExistsByName(ctx, *input.Name, productSlug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.WithField(apperrors.KindConflict, "name", "A product with this name already exists.")
		}
		// The slug stays as derived at creation time.
		updates["name"] = *input.Name
	}
	if err := s.checkParents(ctx, input.CategoryID, input.SubCategoryID); err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
	}
	if input.SubCategoryID != nil {
		updates["sub_category_id"] = *input.SubCategoryID
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.RegularPrice != nil {
		updates["regular_price"] = *input.RegularPrice
	}
	if input.SalePrice != nil {
		updates["sale_price"] = *input.SalePrice
	}
	if input.Sizes != nil {
		updates["sizes"] = models.StringList(*input.Sizes)
	}
	if input.Colors != nil {
		updates["colors"] = models.StringList(*input.Colors)
	}
	if input.Gender != nil {
		updates["gender"] = *input.Gender
	}
	if input.ProductCode != nil {
		updates["product_code"] = *input.ProductCode
	}
	if input.ProductSKU != nil {
		updates["product_sku"] = *input.ProductSKU
	}
	if input.Tags != nil {
		updates["tags"] = models.StringList(*input.Tags)
	}
	if input.Quantity != nil {
		updates["quantity"] = *input.Quantity
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		if _, err := s.products.Update(ctx, productSlug, updates); err != nil {
			return nil, err
		}
		s.invalidateProductCache(ctx)
	}
	return s.products.GetBySlug(ctx, productSlug)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productSlug string) error {
	affected, err := s.products.SoftDelete(ctx, productSlug)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.WithField(apperrors.KindNotFound, "product", "Product not found.")
	}
	s.invalidateProductCache(ctx)
	return nil
}
