package postgres

import (
	"context"
	"errors"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ItemRepository struct {
	db Runner
}

func NewItemRepository(db Runner) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.GroceryItem) (*domain.GroceryItem, error) {
	query := `
		INSERT INTO grocery_items (user_id, name, quantity, store, category, notes, is_purchased)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + itemColumns

	var created *domain.GroceryItem
	err := r.db.Run(ctx, func(ctx context.Context, q Querier) error {
		var err error
		created, err = scanItem(q.QueryRow(ctx, query,
			item.UserID,
			item.Name,
			item.Quantity,
			item.Store,
			item.Category,
			item.Notes,
			item.IsPurchased,
		))
		return err
	})
	if err != nil {
		return nil, dbError("create item", err)
	}
	return created, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id, userID int64) (*domain.GroceryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM grocery_items WHERE id = $1 AND user_id = $2`

	var item *domain.GroceryItem
	err := r.db.Run(ctx, func(ctx context.Context, q Querier) error {
		var err error
		item, err = scanItem(q.QueryRow(ctx, query, id, userID))
		return err
	})
	if err != nil {
		return nil, dbError("get item", err)
	}
	return item, nil
}

func (r *ItemRepository) List(ctx context.Context, userID int64, filter domain.ItemFilter) ([]*domain.GroceryItem, error) {
	query, args := selectItemsQuery(userID, filter)

	var items []*domain.GroceryItem
	err := r.db.Run(ctx, func(ctx context.Context, q Querier) error {
		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.GroceryItem, error) {
			return scanItem(row)
		})
		return err
	})
	if err != nil {
		return nil, dbError("list items", err)
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, id, userID int64, patch domain.ItemPatch) (*domain.GroceryItem, error) {
	query, args, ok := updateItemQuery(id, userID, patch)
	if !ok {
		return nil, domain.NewValidationError(errEmptyPatch)
	}

	var updated *domain.GroceryItem
	err := r.db.Run(ctx, func(ctx context.Context, q Querier) error {
		var err error
		updated, err = scanItem(q.QueryRow(ctx, query, args...))
		return err
	})
	if err != nil {
		return nil, dbError("update item", err)
	}
	return updated, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id, userID int64) error {
	err := r.db.Run(ctx, func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM grocery_items WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return dbError("delete item", err)
	}
	return nil
}

const errEmptyPatch = "At least one field must be provided for update"

func scanItem(row pgx.Row) (*domain.GroceryItem, error) {
	var it domain.GroceryItem
	err := row.Scan(
		&it.ID, &it.UserID, &it.Name, &it.Quantity, &it.Store, &it.Category, &it.Notes,
		&it.IsPurchased, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &it, nil
}
