package repository

import (
	"context"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
)

// ItemRepository is owner-scoped: every method that touches an existing item takes the owner id
// and applies it in the query predicate. Rows owned by someone else are reported as
// domain.ErrItemNotFound.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.GroceryItem) (*domain.GroceryItem, error)
	GetByID(ctx context.Context, id, userID int64) (*domain.GroceryItem, error)
	List(ctx context.Context, userID int64, filter domain.ItemFilter) ([]*domain.GroceryItem, error)
	Update(ctx context.Context, id, userID int64, patch domain.ItemPatch) (*domain.GroceryItem, error)
	Delete(ctx context.Context, id, userID int64) error
}
