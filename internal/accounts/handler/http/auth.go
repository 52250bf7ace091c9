package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/accounts/service"
	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
	"github.com/dhruvil1809/ecommerce-backend/internal/validate"
)

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"required,max=30"`
	LastName    string `json:"last_name" validate:"required,max=30"`
	PhoneNumber string `json:"phone_number" validate:"required,max=15"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	user, tokens, err := h.authService.Register(c.UserContext(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return envelope.Error(c, err)
	}

	return envelope.Success(c, fiber.StatusCreated, "User registered successfully.", fiber.Map{
		"user":   user,
		"access": tokens.AccessToken,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := validate.ParseBody(c, &req); err != nil {
		return envelope.Error(c, err)
	}

	_, tokens, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return envelope.Error(c, err)
	}

	return envelope.Success(c, fiber.StatusOK, "Login successful.", fiber.Map{
		"access": tokens.AccessToken,
	})
}
