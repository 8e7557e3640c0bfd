package sqlite

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a GORM-backed refresh token repository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	m := model.RefreshTokenFromEntity(token)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return errors.Wrap(err, "create refresh token")
	}
	token.ID = m.ID
	token.CreatedAt = m.CreatedAt

	return nil
}

func (r *refreshTokenRepository) FindByID(ctx context.Context, id uint) (*entity.RefreshToken, error) {
	var m model.RefreshToken
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}
		return nil, errors.Wrap(err, "find refresh token by id")
	}

	return m.ToEntity(), nil
}

func (r *refreshTokenRepository) FindActive(ctx context.Context) ([]*entity.RefreshToken, error) {
	var ms []model.RefreshToken
	err := r.db.WithContext(ctx).
		Where("revoked = ? AND expires_at > ?", false, time.Now()).
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find active refresh tokens")
	}

	tokens := make([]*entity.RefreshToken, 0, len(ms))
	for i := range ms {
		tokens = append(tokens, ms[i].ToEntity())
	}

	return tokens, nil
}

func (r *refreshTokenRepository) List(ctx context.Context) ([]*entity.RefreshToken, error) {
	var ms []model.RefreshToken
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "list refresh tokens")
	}

	tokens := make([]*entity.RefreshToken, 0, len(ms))
	for i := range ms {
		tokens = append(tokens, ms[i].ToEntity())
	}

	return tokens, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked", true)
	if result.Error != nil {
		return errors.Wrap(result.Error, "revoke refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

func (r *refreshTokenRepository) DeleteInactive(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("revoked = ? OR expires_at <= ?", true, time.Now()).
		Delete(&model.RefreshToken{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete inactive refresh tokens")
	}

	return result.RowsAffected, nil
}
