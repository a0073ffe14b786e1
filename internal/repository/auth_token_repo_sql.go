package repository

import (
	"context"
	"errors"
	"time"

	"really-simple-feedback/internal/models"

	"gorm.io/gorm"
)

type SQLAuthTokenRepo struct {
	db *gorm.DB
}

func NewSQLAuthTokenRepo(db *gorm.DB) *SQLAuthTokenRepo {
	return &SQLAuthTokenRepo{db: db}
}

func (r *SQLAuthTokenRepo) Migrate() error {
	return r.db.AutoMigrate(&models.AuthToken{})
}

func (r *SQLAuthTokenRepo) Create(ctx context.Context, token *models.AuthToken) error {
	token.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *SQLAuthTokenRepo) FindByToken(ctx context.Context, token string) (*models.AuthToken, error) {
	var authToken models.AuthToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&authToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &authToken, nil
}

func (r *SQLAuthTokenRepo) MarkUsed(ctx context.Context, token string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.AuthToken{}).
		Where("token = ? AND is_used = ?", token, false).
		Update("is_used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
