// Package http exposes the account endpoints over Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/accounts/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes wires the public auth endpoints and the authenticated
// profile endpoints. protected is the JWT middleware.
func (h *AuthHandler) RegisterRoutes(app *fiber.App, protected fiber.Handler) {
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Post("/email-verify", h.RequestCode)
	app.Post("/code-verify", h.VerifyCode)
	app.Post("/reset-forgot-password", h.ResetPassword)

	app.Get("/profile", protected, h.GetProfile)
	app.Put("/profile", protected, h.UpdateProfile)
	app.Post("/profile/deactivate", protected, h.Deactivate)
	app.Delete("/profile", protected, h.Delete)
	app.Post("/logout", protected, h.Logout)
}
