package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
	"github.com/dhruvil1809/ecommerce-backend/internal/validate"
)

type requestCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) RequestCode(c *fiber.Ctx) error {
	var req requestCodeRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	if err := h.authService.RequestVerificationCode(c.UserContext(), req.Email); err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Verification code sent to your email.", nil)
}

type verifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

func (h *AuthHandler) VerifyCode(c *fiber.Ctx) error {
	var req verifyCodeRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	if err := h.authService.VerifyCode(c.UserContext(), req.Email, req.Code); err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Code verified successfully.", nil)
}

type resetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	err := h.authService.ResetForgottenPassword(c.UserContext(), req.Email, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return envelope.Error(c, err)
	}
	return envelope.Success(c, fiber.StatusOK, "Password reset successfully.", nil)
}
