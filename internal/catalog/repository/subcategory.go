package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type SubCategoryRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.SubCategory, error)
	GetBySlug(ctx context.Context, slug string) (*models.SubCategory, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByName(ctx context.Context, name, excludeSlug string) (bool, error)
	Create(ctx context.Context, subCategory *models.SubCategory) error
	Update(ctx context.Context, slug string, updates map[string]interface{}) (int64, error)
	SoftDelete(ctx context.Context, slug string) (int64, error)
}

type subCategoryRepository struct {
	db *gorm.DB
}

func NewSubCategoryRepository(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

func (r *subCategoryRepository) scope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("deleted = ?", false)
}

func (r *subCategoryRepository) List(ctx context.Context, limit, offset int) ([]models.SubCategory, error) {
	var subCategories []models.SubCategory
	err := r.scope(ctx).Preload("Category").
		Order("id asc").Limit(limit).Offset(offset).
		Find(&subCategories).Error
	return subCategories, err
}

func (r *subCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	if err := r.scope(ctx).Where("slug = ?", slug).First(&subCategory).Error; err != nil {
		return nil, err
	}
	return &subCategory, nil
}

func (r *subCategoryRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.scope(ctx).Model(&models.SubCategory{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *subCategoryRepository) ExistsByName(ctx context.Context, name, excludeSlug string) (bool, error) {
	query := r.scope(ctx).Model(&models.SubCategory{}).Where("name = ?", name)
	if excludeSlug != "" {
		query = query.Where("slug <> ?", excludeSlug)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *subCategoryRepository) Create(ctx context.Context, subCategory *models.SubCategory) error {
	return r.db.WithContext(ctx).Create(subCategory).Error
}

func (r *subCategoryRepository) Update(ctx context.Context, slug string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.SubCategory{}).
		Where("slug = ? AND deleted = ?", slug, false).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *subCategoryRepository) SoftDelete(ctx context.Context, slug string) (int64, error) {
	return r.Update(ctx, slug, map[string]interface{}{"deleted": true})
}
