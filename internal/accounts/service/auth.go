// Package service implements account lifecycle and the verification-code
// flow. The TTL store and mailer are injected collaborators; no state is
// cached across requests.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dhruvil1809/ecommerce-backend/internal/accounts/repository"
	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/cache"
	"github.com/dhruvil1809/ecommerce-backend/internal/configs"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
	"github.com/dhruvil1809/ecommerce-backend/pkg/jwt"
	"github.com/dhruvil1809/ecommerce-backend/pkg/mail"
	"github.com/dhruvil1809/ecommerce-backend/pkg/password"
	"github.com/dhruvil1809/ecommerce-backend/pkg/verification"
)

const (
	verificationCodePrefix = "verification_code:"
	refreshCachePrefix     = "refresh_token:"
	blacklistPrefix        = "blacklist:"

	// VerificationCodeTTL bounds how long an emailed code stays valid.
	// A re-issued code overwrites the previous one; there is at most
	// one live code per email.
	VerificationCodeTTL = 300 * time.Second
)

type AuthService struct {
	users  repository.UserRepository
	cfg    *configs.Config
	cache  cache.Store
	mailer mail.Mailer
}

func NewAuthService(users repository.UserRepository, cfg *configs.Config, store cache.Store, mailer mail.Mailer) *AuthService {
	return &AuthService{
		users:  users,
		cfg:    cfg,
		cache:  store,
		mailer: mailer,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func codeKey(email string) string {
	return verificationCodePrefix + email
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, *jwt.TokenPair, error) {
	email := NormalizeEmail(input.Email)

	emailExists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if emailExists {
		return nil, nil, apperrors.WithField(apperrors.KindConflict, "email", "A user with this email already exists.")
	}

	phoneExists, err := s.users.ExistsByPhone(ctx, input.PhoneNumber)
	if err != nil {
		return nil, nil, err
	}
	if phoneExists {
		return nil, nil, apperrors.WithField(apperrors.KindConflict, "phone_number", "A user with this phone number already exists.")
	}

	hashed, err := password.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*models.User, *jwt.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.InvalidCredentials
		}
		return nil, nil, err
	}

	if err := password.CheckPasswordHash(plaintext, user.PasswordHash); err != nil {
		return nil, nil, apperrors.InvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, apperrors.AccountInactive
	}

	if err := s.users.UpdateLoginTime(ctx, user.ID); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*jwt.TokenPair, error) {
	tokens, err := jwt.GeneratePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s%d", refreshCachePrefix, user.ID)
	if err := s.cache.Set(ctx, cacheKey, tokens.RefreshToken, jwt.RefreshTokenExpiry); err != nil {
		return nil, err
	}
	return tokens, nil
}

// RequestVerificationCode issues a fresh code for the account's email,
// overwriting any previous one, and mails it out of band. The code never
// appears in the API response. Unknown emails leave the store untouched.
func (s *AuthService) RequestVerificationCode(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.UserNotFound
		}
		return err
	}

	code := verification.GenerateCode()
	if err := s.cache.Set(ctx, codeKey(email), code, VerificationCodeTTL); err != nil {
		return err
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
	if err := s.mailer.SendPlainTextEmail(ctx, email, "Your verification code", body); err != nil {
		_ = s.cache.Delete(ctx, codeKey(email))
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// VerifyCode succeeds iff the submitted code exactly matches the live
// stored value. The code is left in place on success; expiry is enforced
// by the store's TTL.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)

	var stored string
	if err := s.cache.Get(ctx, codeKey(email), &stored); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return apperrors.InvalidVerificationCode
		}
		return err
	}
	if stored != code {
		return apperrors.InvalidVerificationCode
	}
	return nil
}

// ResetForgottenPassword replaces the password hash unconditionally. It
// does not depend on a prior VerifyCode call.
func (s *AuthService) ResetForgottenPassword(ctx context.Context, email, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return apperrors.PasswordMismatch
	}

	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.UserNotFound
		}
		return err
	}

	hashed, err := password.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hashed)
}

type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.UserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial update; nil fields keep prior values.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	updates := map[string]interface{}{}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.PhoneNumber != nil {
		exists, err := s.users.ExistsByPhone(ctx, *input.PhoneNumber)
		if err != nil {
			return nil, err
		}
		current, err := s.GetProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		if exists && current.PhoneNumber != *input.PhoneNumber {
			return nil, apperrors.WithField(apperrors.KindConflict, "phone_number", "A user with this phone number already exists.")
		}
		updates["phone_number"] = *input.PhoneNumber
	}

	if len(updates) > 0 {
		if err := s.users.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(ctx, userID)
}

func (s *AuthService) DeactivateAccount(ctx context.Context, userID uint) error {
	return s.users.SetActive(ctx, userID, false)
}

func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.users.SoftDelete(ctx, userID)
}

// Logout blacklists the access token for its remaining lifetime and drops
// the cached refresh token.
func (s *AuthService) Logout(ctx context.Context, userID uint, accessToken string) error {
	if ttl := jwt.GetTokenRemainingTTL(accessToken); ttl > 0 {
		if err := s.cache.Set(ctx, blacklistPrefix+accessToken, "blacklisted", ttl); err != nil {
			return err
		}
	}
	return s.cache.Delete(ctx, fmt.Sprintf("%s%d", refreshCachePrefix, userID))
}

// IsTokenBlacklisted is consulted by the auth middleware.
func (s *AuthService) IsTokenBlacklisted(ctx context.Context, token string) bool {
	var val string
	err := s.cache.Get(ctx, blacklistPrefix+token, &val)
	return err == nil && val == "blacklisted"
}
