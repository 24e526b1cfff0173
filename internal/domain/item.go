package domain

import "time"

// Field bounds shared by create, update and list filters.
const (
	MaxNameLength     = 255
	MaxStoreLength    = 255
	MaxCategoryLength = 100
	MaxNotesLength    = 1000
	DefaultQuantity   = 1
)

type GroceryItem struct {
	ID          int64
	UserID      int64 // owner, immutable after creation
	Name        string
	Quantity    int
	Store       *string
	Category    *string
	Notes       *string
	IsPurchased bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemPatch is a sparse update: nil fields are left untouched.
// A non-nil empty Store, Category or Notes clears the column.
type ItemPatch struct {
	Name        *string
	Quantity    *int
	Store       *string
	Category    *string
	Notes       *string
	IsPurchased *bool
}

func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Quantity == nil && p.Store == nil &&
		p.Category == nil && p.Notes == nil && p.IsPurchased == nil
}

// ItemFilter narrows a list query. Nil fields impose no constraint; set fields are AND-combined.
type ItemFilter struct {
	Category    *string
	Store       *string
	IsPurchased *bool
	Search      *string // case-insensitive substring of name or notes
}
