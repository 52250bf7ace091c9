package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/cache"
	"github.com/dhruvil1809/ecommerce-backend/internal/catalog/repository"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestCatalog(t *testing.T) (*CatalogService, *cache.Memory, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	store := cache.NewMemory()
	svc := NewCatalogService(
		repository.NewCategoryRepository(db),
		repository.NewSubCategoryRepository(db),
		repository.NewProductRepository(db),
		store,
	)
	return svc, store, db
}

func createCategory(t *testing.T, svc *CatalogService, name string) *models.Category {
	t.Helper()
	category, err := svc.CreateCategory(context.Background(), CategoryInput{Name: name})
	require.NoError(t, err)
	return category
}

func createProduct(t *testing.T, svc *CatalogService, name string) *models.Product {
	t.Helper()
	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:         name,
		RegularPrice: decimal.NewFromInt(100),
		SalePrice:    decimal.NewFromInt(80),
		Quantity:     10,
	})
	require.NoError(t, err)
	return product
}

func TestCreateCategorySlug(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	category := createCategory(t, svc, "Summer Wear")
	assert.Equal(t, "summer-wear", category.Slug)
	assert.True(t, category.Status)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	createCategory(t, svc, "Shoes")

	_, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Shoes"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestSoftDeletedCategoryNameReusable(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()

	first := createCategory(t, svc, "Hats")
	require.NoError(t, svc.DeleteCategory(ctx, first.Slug))

	reborn, err := svc.CreateCategory(ctx, CategoryInput{Name: "Hats"})
	require.NoError(t, err, "uniqueness only counts live rows")
	assert.Equal(t, "hats", reborn.Slug)
	assert.NotEqual(t, first.ID, reborn.ID)
}

func TestUpdateCategoryKeepsSlug(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()
	category := createCategory(t, svc, "Winter Wear")

	name := "Cold Weather Gear"
	updated, err := svc.UpdateCategory(ctx, category.Slug, UpdateCategoryInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Cold Weather Gear", updated.Name)
	assert.Equal(t, "winter-wear", updated.Slug)
}

func TestUpdateCategoryNameConflictExcludesSelf(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()
	createCategory(t, svc, "Bags")
	category := createCategory(t, svc, "Belts")

	taken := "Bags"
	_, err := svc.UpdateCategory(ctx, category.Slug, UpdateCategoryInput{Name: &taken})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	same := "Belts"
	_, err = svc.UpdateCategory(ctx, category.Slug, UpdateCategoryInput{Name: &same})
	assert.NoError(t, err, "keeping your own name is not a conflict")
}

func TestDeleteCategoryTwice(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()
	category := createCategory(t, svc, "Scarves")

	require.NoError(t, svc.DeleteCategory(ctx, category.Slug))
	err := svc.DeleteCategory(ctx, category.Slug)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeleteCategoryLeavesProductReference(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()

	category := createCategory(t, svc, "Jackets")
	product, err := svc.CreateProduct(ctx, ProductInput{
		Name:         "Rain Jacket",
		RegularPrice: decimal.NewFromInt(120),
		SalePrice:    decimal.NewFromInt(99),
		CategoryID:   &category.ID,
		Quantity:     5,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, category.Slug))

	got, err := svc.GetProduct(ctx, product.Slug)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, category.ID, *got.CategoryID)
}

func TestCreateSubCategoryRequiresCategory(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()

	_, err := svc.CreateSubCategory(ctx, SubCategoryInput{CategoryID: 999, Name: "Sneakers"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	category := createCategory(t, svc, "Shoes")
	sub, err := svc.CreateSubCategory(ctx, SubCategoryInput{CategoryID: category.ID, Name: "Sneakers"})
	require.NoError(t, err)
	assert.Equal(t, "sneakers", sub.Slug)
}

func TestCreateProductWithVariantsAndImages(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, ProductInput{
		Name:         "Basic Tee",
		RegularPrice: decimal.NewFromFloat(29.99),
		SalePrice:    decimal.NewFromFloat(19.99),
		Sizes:        []string{"S", "M", "L"},
		Colors:       []string{"black", "white"},
		Quantity:     50,
		Images:       []string{"tee-front.jpg", "tee-back.jpg"},
	})
	require.NoError(t, err)
	assert.Len(t, product.ProductID, 8)

	got, err := svc.GetProduct(ctx, product.Slug)
	require.NoError(t, err)
	assert.True(t, got.Sizes.Contains("M"))
	assert.False(t, got.Sizes.Contains("XL"))
	assert.Len(t, got.Images, 2)
}

func TestCreateProductUnknownParent(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	missing := uint(12345)

	_, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:         "Orphan",
		RegularPrice: decimal.NewFromInt(10),
		SalePrice:    decimal.NewFromInt(8),
		CategoryID:   &missing,
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestUpdateProductPartial(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()
	product := createProduct(t, svc, "Denim Jeans")

	quantity := 3
	updated, err := svc.UpdateProduct(ctx, product.Slug, UpdateProductInput{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, "Denim Jeans", updated.Name)
	assert.Equal(t, "denim-jeans", updated.Slug)
	assert.True(t, product.SalePrice.Equal(updated.SalePrice))
}

func TestDeleteProductHidesFromReads(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()
	product := createProduct(t, svc, "Gone Soon")

	require.NoError(t, svc.DeleteProduct(ctx, product.Slug))

	_, err := svc.GetProduct(ctx, product.Slug)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	products, err := svc.ListProducts(ctx, Pagination{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListProductsCacheInvalidation(t *testing.T) {
	svc, store, _ := newTestCatalog(t)
	ctx := context.Background()
	createProduct(t, svc, "First")

	products, err := svc.ListProducts(ctx, Pagination{})
	require.NoError(t, err)
	require.Len(t, products, 1)

	var cached []models.Product
	require.NoError(t, store.Get(ctx, productListCacheKey, &cached),
		"first page should be cached after a list")

	createProduct(t, svc, "Second")

	products, err = svc.ListProducts(ctx, Pagination{})
	require.NoError(t, err)
	assert.Len(t, products, 2, "writes must invalidate the cached first page")
}

func TestListProductsPaginationClamp(t *testing.T) {
	limit, offset := Pagination{Limit: 500, Offset: -3}.normalize()
	assert.Equal(t, maxLimit, limit)
	assert.Zero(t, offset)

	limit, _ = Pagination{}.normalize()
	assert.Equal(t, defaultLimit, limit)
}
