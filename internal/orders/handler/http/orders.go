// Package http exposes checkout and order lookup over Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
	"github.com/dhruvil1809/ecommerce-backend/internal/middleware"
	"github.com/dhruvil1809/ecommerce-backend/internal/orders/service"
	"github.com/dhruvil1809/ecommerce-backend/internal/validate"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) RegisterRoutes(app *fiber.App, protected fiber.Handler) {
	app.Post("/checkout", protected, h.Checkout)
	app.Get("/orders", protected, h.ListOrders)
	app.Get("/orders/:orderId", protected, h.GetOrder)
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,max=50"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required,max=100"`
	PostalCode    string `json:"postal_code" validate:"required,max=20"`
	Country       string `json:"country" validate:"required,max=100"`
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req checkoutRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	order, err := h.orders.Checkout(c.UserContext(), user, service.CheckoutInput{
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
	})
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusCreated, "Order placed successfully.", order)
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	orders, err := h.orders.ListOrders(c.UserContext(), user.ID)
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Orders fetched successfully.", fiber.Map{
		"orders": orders,
	})
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	order, err := h.orders.GetOrder(c.UserContext(), user.ID, c.Params("orderId"))
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Order fetched successfully.", order)
}
