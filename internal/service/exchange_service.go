package service

import (
	"context"
	"fmt"

	"campushub/internal/auth"
	apperrors "campushub/internal/errors"
	"campushub/internal/model"
	"campushub/internal/repository"
)

// NewExchangeItem is the creation payload for a listing.
type NewExchangeItem struct {
	Title       string
	Description string
	Category    string
	Condition   string
	ImageURLs   string
}

// ExchangeService handles exchange listings.
type ExchangeService interface {
	CreateItem(ctx context.Context, owner *model.User, in NewExchangeItem) (*model.ExchangeItem, error)
	GetItem(ctx context.Context, id uint) (*model.ExchangeItem, error)
	ListItems(ctx context.Context, page repository.Page) ([]model.ExchangeItem, error)
	UpdateItem(ctx context.Context, actor *model.User, id uint, p model.ExchangeItemPatch) (*model.ExchangeItem, error)
	DeleteItem(ctx context.Context, actor *model.User, id uint) error
}

type exchangeService struct {
	repo repository.ExchangeItemRepository
}

// NewExchangeService creates a new exchange service.
func NewExchangeService(repo repository.ExchangeItemRepository) ExchangeService {
	return &exchangeService{repo: repo}
}

// CreateItem lists an item as available under owner.
func (s *exchangeService) CreateItem(ctx context.Context, owner *model.User, in NewExchangeItem) (*model.ExchangeItem, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	condition := in.Condition
	if condition == "" {
		condition = model.DefaultCondition
	}

	item := &model.ExchangeItem{
		OwnerUserID: owner.ID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Condition:   condition,
		ImageURLs:   in.ImageURLs,
		IsAvailable: true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create exchange item: %w", err)
	}
	item.Owner = owner
	return item, nil
}

func (s *exchangeService) GetItem(ctx context.Context, id uint) (*model.ExchangeItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrExchangeItemNotFound, "get exchange item")
	}
	return item, nil
}

func (s *exchangeService) ListItems(ctx context.Context, page repository.Page) ([]model.ExchangeItem, error) {
	items, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list exchange items: %w", err)
	}
	return items, nil
}

// UpdateItem merges the patch onto the owner's listing.
func (s *exchangeService) UpdateItem(ctx context.Context, actor *model.User, id uint, p model.ExchangeItemPatch) (*model.ExchangeItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeResource(actor, item); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item, p.Apply(item)); err != nil {
		return nil, fmt.Errorf("update exchange item: %w", err)
	}
	return item, nil
}

func (s *exchangeService) DeleteItem(ctx context.Context, actor *model.User, id uint) error {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeResource(actor, item); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete exchange item: %w", err)
	}
	if !deleted {
		return apperrors.ErrExchangeItemNotFound
	}
	return nil
}
