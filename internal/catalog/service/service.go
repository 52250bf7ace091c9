// Package service implements catalog CRUD with soft-delete semantics.
// Slugs are derived from names once, at creation, and never recomputed.
package service

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dhruvil1809/ecommerce-backend/internal/cache"
	"github.com/dhruvil1809/ecommerce-backend/internal/catalog/repository"
)

const (
	defaultLimit = 50
	maxLimit     = 100

	productListCacheKey = "catalog:products:firstpage"
	productListCacheTTL = 60 * time.Second
)

type CatalogService struct {
	categories    repository.CategoryRepository
	subCategories repository.SubCategoryRepository
	products      repository.ProductRepository
	cache         cache.Store
	sfGroup       singleflight.Group // collapses concurrent list fetches on a cache miss
}

func NewCatalogService(
	categories repository.CategoryRepository,
	subCategories repository.SubCategoryRepository,
	products repository.ProductRepository,
	store cache.Store,
) *CatalogService {
	return &CatalogService{
		categories:    categories,
		subCategories: subCategories,
		products:      products,
		cache:         store,
	}
}

type Pagination struct {
	Limit  int
	Offset int
}

func (p Pagination) normalize() (limit, offset int) {
	limit = p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset = p.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (p Pagination) isFirstPage() bool {
	limit, offset := p.normalize()
	return limit == defaultLimit && offset == 0
}

func (s *CatalogService) invalidateProductCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, productListCacheKey); err != nil {
		log.Printf("failed to invalidate product list cache: %v", err)
	}
}
