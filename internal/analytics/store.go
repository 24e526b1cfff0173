// Package analytics builds cross-user usage reports over the grocery tables.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TopItem struct {
	Name        string    `json:"name"`
	Frequency   int64     `json:"frequency"`
	UniqueUsers int64     `json:"uniqueUsers"`
	AvgQuantity float64   `json:"avgQuantity"`
	FirstAdded  time.Time `json:"firstAdded"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type StoreShare struct {
	Store       string `json:"store"`
	ItemCount   int64  `json:"itemCount"`
	UniqueItems int64  `json:"uniqueItems"`
	Customers   int64  `json:"customers"`
}

// UserStat summarises one user's list. FirstItemAt and LastItemAt are nil for users
// without items.
type UserStat struct {
	Email         string     `json:"email"`
	TotalItems    int64      `json:"totalItems"`
	UniqueItems   int64      `json:"uniqueItems"`
	StoresVisited int64      `json:"storesVisited"`
	FirstItemAt   *time.Time `json:"firstItemAt,omitempty"`
	LastItemAt    *time.Time `json:"lastItemAt,omitempty"`
}

// Store runs the read-only aggregate queries. It works on database/sql so it can share
// the goose connection setup.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const topItemsQuery = `
	SELECT name, COUNT(*) AS frequency, COUNT(DISTINCT user_id) AS unique_users,
	       AVG(quantity)::float8 AS avg_quantity, MIN(created_at) AS first_added, MAX(updated_at) AS last_updated
	FROM grocery_items
	GROUP BY name
	ORDER BY frequency DESC, name ASC
	LIMIT $1`

func (s *Store) TopItems(ctx context.Context, limit int) ([]TopItem, error) {
	rows, err := s.db.QueryContext(ctx, topItemsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query top items: %w", err)
	}
	defer rows.Close()

	var out []TopItem
	for rows.Next() {
		var t TopItem
		if err := rows.Scan(&t.Name, &t.Frequency, &t.UniqueUsers, &t.AvgQuantity, &t.FirstAdded, &t.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top items: %w", err)
	}
	return out, nil
}

const storeDistributionQuery = `
	SELECT store, COUNT(*) AS item_count, COUNT(DISTINCT name) AS unique_items, COUNT(DISTINCT user_id) AS customers
	FROM grocery_items
	WHERE store IS NOT NULL AND store <> ''
	GROUP BY store
	ORDER BY item_count DESC, store ASC`

func (s *Store) StoreDistribution(ctx context.Context) ([]StoreShare, error) {
	rows, err := s.db.QueryContext(ctx, storeDistributionQuery)
	if err != nil {
		return nil, fmt.Errorf("query store distribution: %w", err)
	}
	defer rows.Close()

	var out []StoreShare
	for rows.Next() {
		var st StoreShare
		if err := rows.Scan(&st.Store, &st.ItemCount, &st.UniqueItems, &st.Customers); err != nil {
			return nil, fmt.Errorf("scan store share: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store distribution: %w", err)
	}
	return out, nil
}

const userStatsQuery = `
	SELECT u.email, COUNT(gi.id) AS total_items, COUNT(DISTINCT gi.name) AS unique_items,
	       COUNT(DISTINCT gi.store) AS stores_visited, MIN(gi.created_at) AS first_item, MAX(gi.created_at) AS last_item
	FROM users u
	LEFT JOIN grocery_items gi ON gi.user_id = u.id
	GROUP BY u.id, u.email
	ORDER BY total_items DESC, u.email ASC`

func (s *Store) UserStats(ctx context.Context) ([]UserStat, error) {
	rows, err := s.db.QueryContext(ctx, userStatsQuery)
	if err != nil {
		return nil, fmt.Errorf("query user stats: %w", err)
	}
	defer rows.Close()

	var out []UserStat
	for rows.Next() {
		var (
			us          UserStat
			first, last sql.NullTime
		)
		if err := rows.Scan(&us.Email, &us.TotalItems, &us.UniqueItems, &us.StoresVisited, &first, &last); err != nil {
			return nil, fmt.Errorf("scan user stat: %w", err)
		}
		if first.Valid {
			us.FirstItemAt = &first.Time
		}
		if last.Valid {
			us.LastItemAt = &last.Time
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user stats: %w", err)
	}
	return out, nil
}
