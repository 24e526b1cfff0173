package postgres

import (
	"strconv"
	"strings"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
)

// column is the closed set of grocery_items columns a query may reference.
// Identifiers never come from input; only values are bound as parameters.
type column string

const (
	colID          column = "id"
	colUserID      column = "user_id"
	colName        column = "name"
	colQuantity    column = "quantity"
	colStore       column = "store"
	colCategory    column = "category"
	colNotes       column = "notes"
	colIsPurchased column = "is_purchased"
)

const itemColumns = `id, user_id, name, quantity, store, category, notes, is_purchased, created_at, updated_at`

// clauseBuilder collects SQL fragments and their positional arguments.
type clauseBuilder struct {
	args  []any
	parts []string
}

func (b *clauseBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *clauseBuilder) equals(c column, v any) {
	b.parts = append(b.parts, string(c)+" = "+b.bind(v))
}

func (b *clauseBuilder) raw(fragment string) {
	b.parts = append(b.parts, fragment)
}

// containsFold matches pattern case-insensitively against any of cols.
func (b *clauseBuilder) containsFold(pattern string, cols ...column) {
	p := b.bind(pattern)
	ors := make([]string, len(cols))
	for i, c := range cols {
		ors[i] = string(c) + " ILIKE " + p
	}
	b.parts = append(b.parts, "("+strings.Join(ors, " OR ")+")")
}

func (b *clauseBuilder) join(sep string) string {
	return strings.Join(b.parts, sep)
}

// selectItemsQuery builds the owner-scoped list query. The owner predicate is always first.
func selectItemsQuery(userID int64, f domain.ItemFilter) (string, []any) {
	w := &clauseBuilder{}
	w.equals(colUserID, userID)
	if f.Category != nil {
		w.equals(colCategory, *f.Category)
	}
	if f.Store != nil {
		w.equals(colStore, *f.Store)
	}
	if f.IsPurchased != nil {
		w.equals(colIsPurchased, *f.IsPurchased)
	}
	if f.Search != nil {
		w.containsFold(likePattern(*f.Search), colName, colNotes)
	}

	query := `SELECT ` + itemColumns + ` FROM grocery_items WHERE ` + w.join(" AND ") +
		` ORDER BY created_at DESC, id DESC`
	return query, w.args
}

// updateItemQuery builds an owner-scoped UPDATE touching only the fields present in p.
// ok is false when p has no fields.
func updateItemQuery(id, userID int64, p domain.ItemPatch) (query string, args []any, ok bool) {
	b := &clauseBuilder{}
	if p.Name != nil {
		b.equals(colName, *p.Name)
	}
	if p.Quantity != nil {
		b.equals(colQuantity, *p.Quantity)
	}
	if p.Store != nil {
		b.equals(colStore, nullIfEmpty(*p.Store))
	}
	if p.Category != nil {
		b.equals(colCategory, nullIfEmpty(*p.Category))
	}
	if p.Notes != nil {
		b.equals(colNotes, nullIfEmpty(*p.Notes))
	}
	if p.IsPurchased != nil {
		b.equals(colIsPurchased, *p.IsPurchased)
	}
	if len(b.parts) == 0 {
		return "", nil, false
	}
	b.raw("updated_at = NOW()")
	set := b.join(", ")

	w := &clauseBuilder{args: b.args}
	w.equals(colID, id)
	w.equals(colUserID, userID)

	query = `UPDATE grocery_items SET ` + set + ` WHERE ` + w.join(" AND ") + ` RETURNING ` + itemColumns
	return query, w.args, true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns s into a substring pattern with LIKE wildcards in s escaped.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
