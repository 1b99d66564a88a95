package repository

import (
	"context"
	"errors"

	"github.com/airsense/platform/internal/models"
	appErr "github.com/airsense/platform/pkg/errors"
	"gorm.io/gorm"
)

// VerificationRepository is the email-verification ledger. Upsert keeps a
// single row per email; GetByEmail returns (nil, nil) when no code was ever
// sent for the address.
type VerificationRepository interface {
	Upsert(ctx context.Context, email, codeHash string) error
	GetByEmail(ctx context.Context, email string) (*models.EmailVerification, error)
	MarkValidated(ctx context.Context, email string) error
	IsValidated(ctx context.Context, email string) (bool, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Upsert(ctx context.Context, email, codeHash string) error {
	var existing models.EmailVerification
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		existing.CodeHash = codeHash
		existing.Validated = false
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "update verification code failed")
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.EmailVerification{Email: email, CodeHash: codeHash}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "create verification code failed")
		}
		return nil
	default:
		return appErr.Wrap(err, appErr.CodeInternal, "get verification failed")
	}
}

func (r *verificationRepository) GetByEmail(ctx context.Context, email string) (*models.EmailVerification, error) {
	var row models.EmailVerification
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get verification failed")
	}
	return &row, nil
}

func (r *verificationRepository) MarkValidated(ctx context.Context, email string) error {
	res := r.db.WithContext(ctx).
		Model(&models.EmailVerification{}).
		Where("email = ?", email).
		Update("validated", true)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "mark email validated failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "verification not found")
	}
	return nil
}

func (r *verificationRepository) IsValidated(ctx context.Context, email string) (bool, error) {
	row, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return row != nil && row.Validated, nil
}
