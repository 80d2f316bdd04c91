package repository

import (
	"context"

	"gorm.io/gorm"

	"campushub/internal/model"
)

// ExchangeItemRepository defines listing persistence operations.
type ExchangeItemRepository interface {
	Create(ctx context.Context, item *model.ExchangeItem) error
	FindByID(ctx context.Context, id uint) (*model.ExchangeItem, error)
	List(ctx context.Context, page Page) ([]model.ExchangeItem, error)
	Update(ctx context.Context, item *model.ExchangeItem, columns []string) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type exchangeItemRepository struct {
	db *gorm.DB
}

// NewExchangeItemRepository creates a new exchange item repository.
func NewExchangeItemRepository(db *gorm.DB) ExchangeItemRepository {
	return &exchangeItemRepository{db: db}
}

func (r *exchangeItemRepository) Create(ctx context.Context, item *model.ExchangeItem) error {
	return r.db.WithContext(ctx).Omit("Owner").Create(item).Error
}

func (r *exchangeItemRepository) FindByID(ctx context.Context, id uint) (*model.ExchangeItem, error) {
	var item model.ExchangeItem
	if err := r.db.WithContext(ctx).Preload("Owner").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns listings newest first.
func (r *exchangeItemRepository) List(ctx context.Context, page Page) ([]model.ExchangeItem, error) {
	var items []model.ExchangeItem
	if err := r.db.WithContext(ctx).Preload("Owner").Scopes(page.scope).
		Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *exchangeItemRepository) Update(ctx context.Context, item *model.ExchangeItem, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(item).Select(withUpdatedAt(columns)).Updates(item).Error
}

func (r *exchangeItemRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.ExchangeItem{}, id)
	return res.RowsAffected > 0, res.Error
}
