package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/accounts/service"
	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
	"github.com/dhruvil1809/ecommerce-backend/pkg/jwt"
)

const (
	userLocalKey  = "currentUser"
	tokenLocalKey = "accessToken"
)

// Protected authenticates the Bearer access token, rejects blacklisted
// tokens, and loads the account into the request locals.
func Protected(auth *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return envelope.Error(c, apperrors.AuthenticationRequired)
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			return envelope.Error(c, apperrors.AuthenticationRequired)
		}
		if !claims.IsAccessToken() {
			return envelope.Error(c, apperrors.AuthenticationRequired)
		}

		ctx := c.UserContext()
		if auth.IsTokenBlacklisted(ctx, token) {
			return envelope.Error(c, apperrors.AuthenticationRequired)
		}

		user, err := auth.GetProfile(ctx, claims.UserID)
		if err != nil {
			var appErr *apperrors.Error
			if errors.As(err, &appErr) && appErr.Kind == apperrors.KindNotFound {
				return envelope.Error(c, apperrors.AuthenticationRequired)
			}
			return envelope.Error(c, err)
		}
		if !user.IsActive {
			return envelope.Error(c, apperrors.AccountInactive)
		}

		c.Locals(userLocalKey, user)
		c.Locals(tokenLocalKey, token)
		return c.Next()
	}
}

// CurrentUser returns the authenticated account, or nil outside a
// Protected route.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}

func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenLocalKey).(string)
	return token
}
