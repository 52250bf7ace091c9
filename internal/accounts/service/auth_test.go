package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dhruvil1809/ecommerce-backend/internal/accounts/repository"
	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/cache"
	"github.com/dhruvil1809/ecommerce-backend/internal/configs"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type fakeMailer struct {
	sent []sentMail
	fail bool
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) SendPlainTextEmail(_ context.Context, to, subject, body string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeMailer) SendHTMLEmail(ctx context.Context, to, subject, body string) error {
	return f.SendPlainTextEmail(ctx, to, subject, body)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestService(t *testing.T) (*AuthService, *cache.Memory, *fakeMailer) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	store := cache.NewMemory()
	mailer := &fakeMailer{}
	users := repository.NewUserRepository(newTestDB(t))
	return NewAuthService(users, &configs.Config{}, store, mailer), store, mailer
}

func registerUser(t *testing.T, svc *AuthService, email string) *models.User {
	t.Helper()

	user, _, err := svc.Register(context.Background(), RegisterInput{
		Email:       email,
		Password:    "s3cret-pass",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "07000" + email[:3],
	})
	require.NoError(t, err)
	return user
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerUser(t, svc, "dup@example.com")

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:       "DUP@example.com",
		Password:    "another-pass",
		PhoneNumber: "07099999",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestRegisterAssignsPublicID(t *testing.T) {
	svc, _, _ := newTestService(t)
	user := registerUser(t, svc, "ids@example.com")
	assert.Len(t, user.UserID, 8)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerUser(t, svc, "login@example.com")
	ctx := context.Background()

	t.Run("success updates last login", func(t *testing.T) {
		user, tokens, err := svc.Login(ctx, "login@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)

		fresh, err := svc.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, fresh.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "login@example.com", "wrong")
		assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "s3cret-pass")
		assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	})
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	user := registerUser(t, svc, "inactive@example.com")
	ctx := context.Background()

	require.NoError(t, svc.DeactivateAccount(ctx, user.ID))

	_, _, err := svc.Login(ctx, "inactive@example.com", "s3cret-pass")
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestRequestVerificationCodeUnknownEmail(t *testing.T) {
	svc, store, mailer := newTestService(t)
	ctx := context.Background()

	err := svc.RequestVerificationCode(ctx, "ghost@example.com")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Empty(t, mailer.sent)
	assert.Zero(t, store.Len())
}

func TestRequestVerificationCodeStoresAndMails(t *testing.T) {
	svc, store, mailer := newTestService(t)
	ctx := context.Background()
	registerUser(t, svc, "codes@example.com")

	require.NoError(t, svc.RequestVerificationCode(ctx, "codes@example.com"))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "codes@example.com", mailer.sent[0].to)

	var code string
	require.NoError(t, store.Get(ctx, codeKey("codes@example.com"), &code))
	assert.Len(t, code, 4)
	assert.Contains(t, mailer.sent[0].body, code)
}

func TestRequestVerificationCodeOverwritesPrevious(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	registerUser(t, svc, "twice@example.com")

	require.NoError(t, svc.RequestVerificationCode(ctx, "twice@example.com"))
	var first string
	require.NoError(t, store.Get(ctx, codeKey("twice@example.com"), &first))

	require.NoError(t, svc.RequestVerificationCode(ctx, "twice@example.com"))
	var second string
	require.NoError(t, store.Get(ctx, codeKey("twice@example.com"), &second))

	require.NoError(t, svc.VerifyCode(ctx, "twice@example.com", second))
	if first != second {
		err := svc.VerifyCode(ctx, "twice@example.com", first)
		assert.Equal(t, apperrors.KindInvalidCode, apperrors.KindOf(err))
	}
}

func TestRequestVerificationCodeMailFailureClearsCode(t *testing.T) {
	svc, store, mailer := newTestService(t)
	ctx := context.Background()
	registerUser(t, svc, "flaky@example.com")

	mailer.fail = true
	err := svc.RequestVerificationCode(ctx, "flaky@example.com")
	require.Error(t, err)

	var code string
	assert.ErrorIs(t, store.Get(ctx, codeKey("flaky@example.com"), &code), cache.ErrNotFound)
}

func TestVerifyCode(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	registerUser(t, svc, "verify@example.com")
	require.NoError(t, svc.RequestVerificationCode(ctx, "verify@example.com"))

	var code string
	require.NoError(t, store.Get(ctx, codeKey("verify@example.com"), &code))

	t.Run("wrong code", func(t *testing.T) {
		wrong := "0000"
		if wrong == code {
			wrong = "1111"
		}
		err := svc.VerifyCode(ctx, "verify@example.com", wrong)
		assert.Equal(t, apperrors.KindInvalidCode, apperrors.KindOf(err))
	})

	t.Run("match", func(t *testing.T) {
		require.NoError(t, svc.VerifyCode(ctx, "verify@example.com", code))
	})

	t.Run("code survives a successful check", func(t *testing.T) {
		require.NoError(t, svc.VerifyCode(ctx, "verify@example.com", code))
	})

	t.Run("no code issued", func(t *testing.T) {
		err := svc.VerifyCode(ctx, "other@example.com", code)
		assert.Equal(t, apperrors.KindInvalidCode, apperrors.KindOf(err))
	})
}

func TestVerifyCodeExpires(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	registerUser(t, svc, "expiry@example.com")

	base := time.Now()
	store.Now = func() time.Time { return base }
	require.NoError(t, svc.RequestVerificationCode(ctx, "expiry@example.com"))

	var code string
	require.NoError(t, store.Get(ctx, codeKey("expiry@example.com"), &code))

	store.Now = func() time.Time { return base.Add(299 * time.Second) }
	require.NoError(t, svc.VerifyCode(ctx, "expiry@example.com", code))

	store.Now = func() time.Time { return base.Add(301 * time.Second) }
	err := svc.VerifyCode(ctx, "expiry@example.com", code)
	assert.Equal(t, apperrors.KindInvalidCode, apperrors.KindOf(err))
}

func TestResetForgottenPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	registerUser(t, svc, "reset@example.com")

	t.Run("mismatch", func(t *testing.T) {
		err := svc.ResetForgottenPassword(ctx, "reset@example.com", "new-pass-123", "other-pass-123")
		assert.Equal(t, apperrors.KindMismatch, apperrors.KindOf(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		err := svc.ResetForgottenPassword(ctx, "ghost@example.com", "new-pass-123", "new-pass-123")
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("success replaces the password", func(t *testing.T) {
		require.NoError(t, svc.ResetForgottenPassword(ctx, "reset@example.com", "new-pass-123", "new-pass-123"))

		_, _, err := svc.Login(ctx, "reset@example.com", "s3cret-pass")
		assert.Error(t, err)

		_, _, err = svc.Login(ctx, "reset@example.com", "new-pass-123")
		assert.NoError(t, err)
	})
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	user := registerUser(t, svc, "profile@example.com")

	first := "Grace"
	updated, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, user.LastName, updated.LastName)
	assert.Equal(t, user.PhoneNumber, updated.PhoneNumber)
}

func TestUpdateProfilePhoneConflict(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	registerUser(t, svc, "one@example.com")
	second := registerUser(t, svc, "two@example.com")

	taken := "07000one"
	_, err := svc.UpdateProfile(ctx, second.ID, UpdateProfileInput{PhoneNumber: &taken})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	registerUser(t, svc, "logout@example.com")

	user, tokens, err := svc.Login(ctx, "logout@example.com", "s3cret-pass")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenBlacklisted(ctx, tokens.AccessToken))
	require.NoError(t, svc.Logout(ctx, user.ID, tokens.AccessToken))
	assert.True(t, svc.IsTokenBlacklisted(ctx, tokens.AccessToken))
}

func TestDeleteAccountFreesEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	user := registerUser(t, svc, "gone@example.com")

	require.NoError(t, svc.DeleteAccount(ctx, user.ID))

	_, _, err := svc.Login(ctx, "gone@example.com", "s3cret-pass")
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}
