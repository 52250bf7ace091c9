package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type ProductRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	ExistsByName(ctx context.Context, name, excludeSlug string) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, slug string, updates map[string]interface{}) (int64, error)
	SoftDelete(ctx context.Context, slug string) (int64, error)
	AddImages(ctx context.Context, productID uint, images []string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) scope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("deleted = ?", false)
}

func (r *productRepository) withImages(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", "deleted = ?", false)
}

func (r *productRepository) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	err := r.withImages(r.scope(ctx)).
		Order("id asc").Limit(limit).Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.withImages(r.scope(ctx)).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ExistsByName(ctx context.Context, name, excludeSlug string) (bool, error) {
	query := r.scope(ctx).Model(&models.Product{}).Where("name = ?", name)
	if excludeSlug != "" {
		query = query.Where("slug <> ?", excludeSlug)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Create assigns a collision-checked 8-digit public product id before
// inserting. Image rows travel on the association.
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ProductID == "" {
		productID, err := r.generateUniqueProductID(ctx)
		if err != nil {
			return err
		}
		product.ProductID = productID
	}
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) generateUniqueProductID(ctx context.Context) (string, error) {
	for {
		id, err := models.RandomDigitID()
		if err != nil {
			return "", err
		}
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Product{}).
			Where("product_id = ?", id).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return id, nil
		}
	}
}

func (r *productRepository) Update(ctx context.Context, slug string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("slug = ? AND deleted = ?", slug, false).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *productRepository) SoftDelete(ctx context.Context, slug string) (int64, error) {
	return r.Update(ctx, slug, map[string]interface{}{"deleted": true})
}

func (r *productRepository) AddImages(ctx context.Context, productID uint, images []string) error {
	if len(images) == 0 {
		return nil
	}
	rows := make([]models.ProductImage, 0, len(images))
	for _, image := range images {
		rows = append(rows, models.ProductImage{ProductID: productID, Image: image})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
