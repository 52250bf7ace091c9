package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/accounts/service"
	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
	"github.com/dhruvil1809/ecommerce-backend/internal/middleware"
	"github.com/dhruvil1809/ecommerce-backend/internal/validate"
)

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return envelope.Success(c, fiber.StatusOK, "Profile fetched successfully.", user)
}

type updateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=30"`
	LastName    *string `json:"last_name" validate:"omitempty,max=30"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=15"`
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	user := middleware.CurrentUser(c)
	updated, err := h.authService.UpdateProfile(c.UserContext(), user.ID, service.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Profile updated successfully.", updated)
}

func (h *AuthHandler) Deactivate(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.authService.DeactivateAccount(c.UserContext(), user.ID); err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Account deactivated successfully.", nil)
}

func (h *AuthHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.authService.DeleteAccount(c.UserContext(), user.ID); err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Account deleted successfully.", nil)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	token := middleware.CurrentToken(c)
	if err := h.authService.Logout(c.UserContext(), user.ID, token); err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Logged out successfully.", nil)
}
