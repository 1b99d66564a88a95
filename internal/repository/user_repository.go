package repository

import (
	"context"
	"errors"

	"github.com/airsense/platform/internal/models"
	appErr "github.com/airsense/platform/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	GetPasswordHashByID(ctx context.Context, id uint) (string, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	DeleteByEmail(ctx context.Context, email string) error
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db), db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by email failed")
	}
	return nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "check user existence failed")
	}
	return count > 0, nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "check user existence failed")
	}
	return count > 0, nil
}

func (r *userRepository) GetPasswordHashByID(ctx context.Context, id uint) (string, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Select("password_hash").First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", appErr.New(appErr.CodeNotFound, "user not found")
		}
		return "", appErr.Wrap(err, appErr.CodeInternal, "get user password failed")
	}
	return u.PasswordHash, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update password failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	return nil
}

// UpdateFields applies a column map built by the service from the non-nil
// parts of a UserUpdate. The caller guarantees the map is non-empty.
func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update user failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	return nil
}

func (r *userRepository) DeleteByEmail(ctx context.Context, email string) error {
	res := r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.User{})
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete user failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	return nil
}
