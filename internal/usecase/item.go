package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/ErlanBelekov/grocery-api/internal/metrics"
	"github.com/ErlanBelekov/grocery-api/internal/repository"
)

const errEmptyUpdate = "At least one field must be provided for update"

type ItemUsecase struct {
	repo repository.ItemRepository
}

func NewItemUsecase(repo repository.ItemRepository) *ItemUsecase {
	return &ItemUsecase{repo: repo}
}

type CreateItemInput struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Quantity *int    `json:"quantity" validate:"omitnil,min=1,max=2147483647"`
	Store    *string `json:"store" validate:"omitnil,max=255"`
	Category *string `json:"category" validate:"omitnil,max=100"`
	Notes    *string `json:"notes" validate:"omitnil,max=1000"`
}

// UpdateItemInput is a sparse patch. Nil fields are left as they are; an empty
// store, category or notes clears that field.
type UpdateItemInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=255"`
	Quantity    *int    `json:"quantity" validate:"omitnil,min=1,max=2147483647"`
	Store       *string `json:"store" validate:"omitnil,max=255"`
	Category    *string `json:"category" validate:"omitnil,max=100"`
	Notes       *string `json:"notes" validate:"omitnil,max=1000"`
	IsPurchased *bool   `json:"isPurchased"`
}

type ListItemsInput struct {
	Category    *string `json:"category" validate:"omitnil,max=100"`
	Store       *string `json:"store" validate:"omitnil,max=255"`
	IsPurchased *bool   `json:"isPurchased"`
	Search      *string `json:"search" validate:"omitnil,max=255"`
}

func (u *ItemUsecase) CreateItem(ctx context.Context, ownerID int64, input CreateItemInput) (*domain.GroceryItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Store = trimOptional(input.Store)
	input.Category = trimOptional(input.Category)
	input.Notes = trimOptional(input.Notes)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	quantity := domain.DefaultQuantity
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	item := &domain.GroceryItem{
		UserID:   ownerID,
		Name:     input.Name,
		Quantity: quantity,
		Store:    absentIfEmpty(input.Store),
		Category: absentIfEmpty(input.Category),
		Notes:    absentIfEmpty(input.Notes),
	}

	created, err := u.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	metrics.ItemOperationsTotal.WithLabelValues("create").Inc()
	return created, nil
}

func (u *ItemUsecase) GetItem(ctx context.Context, id, ownerID int64) (*domain.GroceryItem, error) {
	item, err := u.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (u *ItemUsecase) ListItems(ctx context.Context, ownerID int64, input ListItemsInput) ([]*domain.GroceryItem, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	items, err := u.repo.List(ctx, ownerID, domain.ItemFilter{
		Category:    input.Category,
		Store:       input.Store,
		IsPurchased: input.IsPurchased,
		Search:      input.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []*domain.GroceryItem{}
	}
	return items, nil
}

func (u *ItemUsecase) UpdateItem(ctx context.Context, id, ownerID int64, input UpdateItemInput) (*domain.GroceryItem, error) {
	return u.update(ctx, id, ownerID, input, "update")
}

func (u *ItemUsecase) DeleteItem(ctx context.Context, id, ownerID int64) error {
	if err := u.repo.Delete(ctx, id, ownerID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	metrics.ItemOperationsTotal.WithLabelValues("delete").Inc()
	return nil
}

func (u *ItemUsecase) MarkPurchased(ctx context.Context, id, ownerID int64) (*domain.GroceryItem, error) {
	purchased := true
	return u.update(ctx, id, ownerID, UpdateItemInput{IsPurchased: &purchased}, "mark_purchased")
}

func (u *ItemUsecase) MarkNotPurchased(ctx context.Context, id, ownerID int64) (*domain.GroceryItem, error) {
	purchased := false
	return u.update(ctx, id, ownerID, UpdateItemInput{IsPurchased: &purchased}, "mark_not_purchased")
}

func (u *ItemUsecase) update(ctx context.Context, id, ownerID int64, input UpdateItemInput, op string) (*domain.GroceryItem, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		input.Name = &name
	}
	input.Store = trimOptional(input.Store)
	input.Category = trimOptional(input.Category)
	input.Notes = trimOptional(input.Notes)

	patch := domain.ItemPatch{
		Name:        input.Name,
		Quantity:    input.Quantity,
		Store:       input.Store,
		Category:    input.Category,
		Notes:       input.Notes,
		IsPurchased: input.IsPurchased,
	}
	if patch.IsEmpty() {
		return nil, domain.NewValidationError(errEmptyUpdate)
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	item, err := u.repo.Update(ctx, id, ownerID, patch)
	if err != nil {
		return nil, fmt.Errorf("%s item: %w", strings.ReplaceAll(op, "_", " "), err)
	}
	metrics.ItemOperationsTotal.WithLabelValues(op).Inc()
	return item, nil
}
