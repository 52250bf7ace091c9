package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	UpdateLoginTime(ctx context.Context, id uint) error
	SetActive(ctx context.Context, id uint, active bool) error
	SoftDelete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) scope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("deleted = ?", false)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.scope(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.scope(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.scope(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.scope(ctx).Model(&models.User{}).Where("phone_number = ?", phone).Count(&count).Error
	return count > 0, err
}

// Create assigns a collision-checked 8-digit public user id before
// inserting.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.UserID == "" {
		userID, err := r.generateUniqueUserID(ctx)
		if err != nil {
			return err
		}
		user.UserID = userID
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) generateUniqueUserID(ctx context.Context) (string, error) {
	for {
		id, err := models.RandomDigitID()
		if err != nil {
			return "", err
		}
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.User{}).
			Where("user_id = ?", id).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return id, nil
		}
	}
}

func (r *userRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(updates).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.Update(ctx, id, map[string]interface{}{"password_hash": passwordHash})
}

func (r *userRepository) UpdateLoginTime(ctx context.Context, id uint) error {
	now := time.Now()
	return r.Update(ctx, id, map[string]interface{}{"last_login_at": &now})
}

func (r *userRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": active})
}

func (r *userRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.Update(ctx, id, map[string]interface{}{"deleted": true})
}
