// seed creates a demo user and a handful of grocery items in the local dev database.
// Re-running is safe: the user and items are only created when missing.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/ErlanBelekov/grocery-api/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/grocery-api/internal/password"
	"github.com/joho/godotenv"
)

const (
	seedEmail    = "demo@grocery.local"
	seedPassword = "demo-password"
)

type itemSpec struct {
	name     string
	quantity int
	store    string
	category string
	notes    string
}

var items = []itemSpec{
	{"Milk", 2, "Aldi", "dairy", "semi-skimmed"},
	{"Eggs", 12, "Aldi", "dairy", "free range"},
	{"Bread", 1, "Bakery", "bakery", ""},
	{"Bananas", 6, "Lidl", "produce", ""},
	{"Apples", 4, "Lidl", "produce", "green"},
	{"Coffee", 1, "", "pantry", "whole bean"},
	{"Rice", 1, "Aldi", "pantry", ""},
	{"Chicken", 2, "Butcher", "meat", "thighs"},
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL, 2)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	db := postgres.NewDB(pool, 5*time.Second)
	users := postgres.NewUserRepository(db)
	itemRepo := postgres.NewItemRepository(db)

	user, err := users.FindByEmail(ctx, seedEmail)
	if errors.Is(err, domain.ErrUserNotFound) {
		hash, hashErr := password.NewBcryptHasher(password.DefaultCost).Hash(seedPassword)
		if hashErr != nil {
			log.Fatalf("hash password: %v", hashErr)
		}
		user, err = users.Create(ctx, seedEmail, hash)
	}
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	existing, err := itemRepo.List(ctx, user.ID, domain.ItemFilter{})
	if err != nil {
		log.Fatalf("list items: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, it := range existing {
		have[it.Name] = true
	}

	var inserted, skipped int
	for _, it := range items {
		if have[it.name] {
			skipped++
			continue
		}
		_, err := itemRepo.Create(ctx, &domain.GroceryItem{
			UserID:   user.ID,
			Name:     it.name,
			Quantity: it.quantity,
			Store:    optional(it.store),
			Category: optional(it.category),
			Notes:    optional(it.notes),
		})
		if err != nil {
			log.Fatalf("insert item %s: %v", it.name, err)
		}
		inserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:          %s\n", seedEmail)
	fmt.Printf("  Password:      %s\n", seedPassword)
	fmt.Printf("  User ID:       %d\n", user.ID)
	fmt.Printf("  Items created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 - log in as the seed user:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:3000/api/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println("    # -> {\"tokens\":{\"accessToken\":\"eyJ...\"}}")
	fmt.Println()
	fmt.Println("  Step 2 - list the items:")
	fmt.Println()
	fmt.Println("    export TOKEN=eyJ...")
	fmt.Println("    curl -s http://localhost:3000/api/grocery-items -H \"Authorization: Bearer $TOKEN\"")
	fmt.Println("    curl -s 'http://localhost:3000/api/grocery-items?store=Aldi&category=dairy' -H \"Authorization: Bearer $TOKEN\"")
	fmt.Println()
	fmt.Println("  Step 3 - mark one purchased:")
	fmt.Println()
	fmt.Println("    curl -s -X POST http://localhost:3000/api/grocery-items/ITEM_ID/purchased -H \"Authorization: Bearer $TOKEN\"")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
