package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gordopods/storefront/internal/models"
)

var ErrAdminAlreadyExists = errors.New("admin already exists")

func (r *GormRepo) FindAdmin(ctx context.Context, username string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateAdminIfNotExists(ctx context.Context, u *models.AdminUser) error {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.AdminUser{}).Where("username = ?", u.Username).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrAdminAlreadyExists
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAdminAlreadyExists
		}
		return err
	}
	return nil
}
