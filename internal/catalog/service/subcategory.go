package service

import (
	"context"

	"github.com/gosimple/slug"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type SubCategoryInput struct {
	CategoryID  uint
	Name        string
	Description string
	Image       string
	Status      *bool
}

type UpdateSubCategoryInput struct {
	CategoryID  *uint
	Name        *string
	Description *string
	Image       *string
	Status      *bool
}

func (s *CatalogService) ListSubCategories(ctx context.Context, page Pagination) ([]models.SubCategory, error) {
	limit, offset := page.normalize()
	return s.subCategories.List(ctx, limit, offset)
}

func (s *CatalogService) CreateSubCategory(ctx context.Context, input SubCategoryInput) (*models.SubCategory, error) {
	categoryExists, err := s.categories.ExistsByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if !categoryExists {
		return nil, apperrors.WithField(apperrors.KindValidation, "category", "Category does not exist.")
	}

	exists, err := s.subCategories.ExistsByName(ctx, input.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.WithField(apperrors.KindConflict, "name", "A subcategory with this name already exists.")
	}

	subCategory := &models.SubCategory{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        slug.Make(input.Name),
		Description: input.Description,
		Image:       input.Image,
		Status:      true,
	}
	if input.Status != nil {
		subCategory.Status = *input.Status
	}

	if err := s.subCategories.Create(ctx, subCategory); err != nil {
		return nil, err
	}
	return subCategory, nil
}

func (s *CatalogService) UpdateSubCategory(ctx context.Context, subCategorySlug string, input UpdateSubCategoryInput) (*models.SubCategory, error) {
	if _, err := s.subCategories.GetBySlug(ctx, subCategorySlug); err != nil {
		return nil, apperrors.WithField(apperrors.KindNotFound, "sub_category", "SubCategory not found.")
	}

	updates := map[string]interface{}{}
	if input.CategoryID != nil {
		categoryExists, err := s.categories.ExistsByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if !categoryExists {
			return nil, apperrors.WithField(apperrors.KindValidation, "category", "Category does not exist.")
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.Name != nil {
		exists, err := s.subCategories.ExistsByName(ctx, *input.Name, subCategorySlug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.WithField(apperrors.KindConflict, "name", "A subcategory with this name already exists.")
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Image != nil {
		updates["image"] = *input.Image
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		if _, err := s.subCategories.Update(ctx, subCategorySlug, updates); err != nil {
			return nil, err
		}
	}
	return s.subCategories.GetBySlug(ctx, subCategorySlug)
}

func (s *CatalogService) DeleteSubCategory(ctx context.Context, subCategorySlug string) error {
	affected, err := s.subCategories.SoftDelete(ctx, subCategorySlug)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.WithField(apperrors.KindNotFound, "sub_category", "SubCategory not found.")
	}
	return nil
}
