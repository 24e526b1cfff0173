package postgres

import (
	"strings"
	"testing"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestSelectItemsQuery_OwnerOnly(t *testing.T) {
	query, args := selectItemsQuery(7, domain.ItemFilter{})

	assert.Contains(t, query, "WHERE user_id = $1 ORDER BY created_at DESC, id DESC")
	assert.Equal(t, []any{int64(7)}, args)
}

func TestSelectItemsQuery_AllFilters(t *testing.T) {
	query, args := selectItemsQuery(3, domain.ItemFilter{
		Category:    ptr("dairy"),
		Store:       ptr("Aldi"),
		IsPurchased: ptr(false),
		Search:      ptr("milk"),
	})

	where := query[strings.Index(query, "WHERE"):]
	assert.True(t, strings.HasPrefix(where, "WHERE user_id = $1 AND "), where)
	assert.Contains(t, query, "category = $2 AND store = $3 AND is_purchased = $4 AND (name ILIKE $5 OR notes ILIKE $5)")
	assert.Equal(t, []any{int64(3), "dairy", "Aldi", false, "%milk%"}, args)
}

func TestSelectItemsQuery_ValuesNeverInlined(t *testing.T) {
	evil := "x'; DROP TABLE users; --"
	query, args := selectItemsQuery(1, domain.ItemFilter{Category: ptr(evil), Search: ptr(evil)})

	assert.NotContains(t, query, "DROP")
	assert.Contains(t, args, evil)
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"milk", "%milk%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
		{"", "%%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, likePattern(tt.in), tt.in)
	}
}

func TestUpdateItemQuery_EmptyPatch(t *testing.T) {
	_, _, ok := updateItemQuery(1, 2, domain.ItemPatch{})
	assert.False(t, ok)
}

func TestUpdateItemQuery_OnlyPresentFields(t *testing.T) {
	query, args, ok := updateItemQuery(10, 20, domain.ItemPatch{Quantity: ptr(4)})
	require.True(t, ok)

	assert.Equal(t,
		"UPDATE grocery_items SET quantity = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3 RETURNING "+itemColumns,
		query)
	assert.Equal(t, []any{4, int64(10), int64(20)}, args)
}

func TestUpdateItemQuery_EmptyOptionalClears(t *testing.T) {
	query, args, ok := updateItemQuery(1, 1, domain.ItemPatch{
		Name:        ptr("Eggs"),
		Store:       ptr(""),
		Notes:       ptr("free range"),
		IsPurchased: ptr(true),
	})
	require.True(t, ok)

	assert.Contains(t, query, "SET name = $1, store = $2, notes = $3, is_purchased = $4, updated_at = NOW()")
	require.Len(t, args, 6)
	assert.Nil(t, args[1])
	assert.Equal(t, "free range", args[2])
}
