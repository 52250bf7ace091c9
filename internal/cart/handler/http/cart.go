// Package http exposes the cart endpoints over Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/cart/service"
	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
	"github.com/dhruvil1809/ecommerce-backend/internal/middleware"
	"github.com/dhruvil1809/ecommerce-backend/internal/validate"
)

type CartHandler struct {
	cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

func (h *CartHandler) RegisterRoutes(app *fiber.App, protected fiber.Handler) {
	app.Get("/cart", protected, h.ViewCart)
	app.Post("/cart", protected, h.AddItem)
	app.Put("/cart-item/:id", protected, h.UpdateItem)
	app.Delete("/cart-item/:id", protected, h.RemoveItem)
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,len=8"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type updateItemRequest struct {
	Quantity *int    `json:"quantity" validate:"omitempty,gte=1"`
	Size     *string `json:"size"`
	Color    *string `json:"color"`
}

func (h *CartHandler) ViewCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	view, err := h.cart.ViewCart(c.UserContext(), user.ID)
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Cart fetched successfully.", view)
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req addItemRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	item, err := h.cart.AddItem(c.UserContext(), user.ID, service.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusCreated, "Item added to cart.", item)
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	itemID, err := c.ParamsInt("id")
	if err != nil || itemID < 1 {
		return envelope.Error(c, apperrors.WithField(apperrors.KindValidation, "id", "Item id must be a positive integer."))
	}

	var req updateItemRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	item, err := h.cart.UpdateItem(c.UserContext(), user.ID, uint(itemID), service.UpdateItemInput{
		Quantity: req.Quantity,
		Size:     req.Size,
		Color:    req.Color,
	})
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Cart item updated.", item)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	itemID, err := c.ParamsInt("id")
	if err != nil || itemID < 1 {
		return envelope.Error(c, apperrors.WithField(apperrors.KindValidation, "id", "Item id must be a positive integer."))
	}

	if err := h.cart.RemoveItem(c.UserContext(), user.ID, uint(itemID)); err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Cart item removed.", nil)
}
