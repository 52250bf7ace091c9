// Package repository implements catalog persistence. Every read filters
// deleted rows; uniqueness checks are scoped to non-deleted rows so a
// soft-deleted name can be reused.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type CategoryRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByName(ctx context.Context, name, excludeSlug string) (bool, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, slug string, updates map[string]interface{}) (int64, error)
	SoftDelete(ctx context.Context, slug string) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) scope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("deleted = ?", false)
}

func (r *categoryRepository) List(ctx context.Context, limit, offset int) ([]models.Category, error) {
	var categories []models.Category
	err := r.scope(ctx).Order("id asc").Limit(limit).Offset(offset).Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.scope(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.scope(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) ExistsByName(ctx context.Context, name, excludeSlug string) (bool, error) {
	query := r.scope(ctx).Model(&models.Category{}).Where("name = ?", name)
	if excludeSlug != "" {
		query = query.Where("slug <> ?", excludeSlug)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, slug string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("slug = ? AND deleted = ?", slug, false).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *categoryRepository) SoftDelete(ctx context.Context, slug string) (int64, error) {
	return r.Update(ctx, slug, map[string]interface{}{"deleted": true})
}
