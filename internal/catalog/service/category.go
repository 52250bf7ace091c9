package service

import (
	"context"

	"github.com/gosimple/slug"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type CategoryInput struct {
	Name        string
	Description string
	Image       string
	Status      *bool
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Image       *string
	Status      *bool
}

func (s *CatalogService) ListCategories(ctx context.Context, page Pagination) ([]models.Category, error) {
	limit, offset := page.normalize()
	return s.categories.List(ctx, limit, offset)
}

func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	exists, err := s.categories.ExistsByName(ctx, input.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.WithField(apperrors.KindConflict, "name", "A category with this name already exists.")
	}

	category := &models.Category{
		Name:        input.Name,
		Slug:        slug.Make(input.Name),
		Description: input.Description,
		Image:       input.Image,
		Status:      true,
	}
	if input.Status != nil {
		category.Status = *input.Status
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory applies a partial update. Renames never regenerate the
// slug.
func (s *CatalogService) UpdateCategory(ctx context.Context, categorySlug string, input UpdateCategoryInput) (*models.Category, error) {
	if _, err := s.categories.GetBySlug(ctx, categorySlug); err != nil {
		return nil, apperrors.WithField(apperrors.KindNotFound, "category", "Category not found.")
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		exists, err := s.categories.ExistsByName(ctx, *input.Name, categorySlug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.WithField(apperrors.KindConflict, "name", "A category with this name already exists.")
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
		if _, err := s.categories.Update(ctx, categorySlug, updates); err != nil {
			return nil, err
		}
	}
	return s.categories.GetBySlug(ctx, categorySlug)
}

// DeleteCategory soft-deletes the category only. Products keep their
// references to it; no cascade, no nulling.
func (s *CatalogService) DeleteCategory(ctx context.Context, categorySlug string) error {
	affected, err := s.categories.SoftDelete(ctx, categorySlug)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.WithField(apperrors.KindNotFound, "category", "Category not found.")
	}
	return nil
}
