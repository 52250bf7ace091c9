// Package http exposes the catalog CRUD endpoints over Fiber. All routes
// require authentication.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/catalog/service"
)

type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) RegisterRoutes(app *fiber.App, protected fiber.Handler) {
	app.Get("/categories", protected, h.ListCategories)
	app.Post("/categories", protected, h.CreateCategory)
	app.Put("/category-update/:slug", protected, h.UpdateCategory)
	app.Delete("/category-delete/:slug", protected, h.DeleteCategory)

	app.Get("/subcategories", protected, h.ListSubCategories)
	app.Post("/subcategories", protected, h.CreateSubCategory)
	app.Put("/subcategory-update/:slug", protected, h.UpdateSubCategory)
	app.Delete("/subcategory-delete/:slug", protected, h.DeleteSubCategory)

	app.Get("/products", protected, h.ListProducts)
	app.Get("/products/:slug", protected, h.GetProduct)
	app.Post("/products", protected, h.CreateProduct)
	app.Put("/product-update/:slug", protected, h.UpdateProduct)
	app.Delete("/product-delete/:slug", protected, h.DeleteProduct)
}

func pageFromQuery(c *fiber.Ctx) service.Pagination {
	return service.Pagination{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
}
