package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/ErlanBelekov/grocery-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/grocery-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type itemUsecaser interface {
	CreateItem(ctx context.Context, ownerID int64, input usecase.CreateItemInput) (*domain.GroceryItem, error)
	GetItem(ctx context.Context, id, ownerID int64) (*domain.GroceryItem, error)
	ListItems(ctx context.Context, ownerID int64, input usecase.ListItemsInput) ([]*domain.GroceryItem, error)
	UpdateItem(ctx context.Context, id, ownerID int64, input usecase.UpdateItemInput) (*domain.GroceryItem, error)
	DeleteItem(ctx context.Context, id, ownerID int64) error
	MarkPurchased(ctx context.Context, id, ownerID int64) (*domain.GroceryItem, error)
	MarkNotPurchased(ctx context.Context, id, ownerID int64) (*domain.GroceryItem, error)
}

type ItemHandler struct {
	itemUsecase itemUsecaser
	logger      *slog.Logger
}

func NewItemHandler(itemUsecase itemUsecaser, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{itemUsecase: itemUsecase, logger: logger.With("component", "item_handler")}
}

type createItemRequest struct {
	Name     string  `json:"name"`
	Quantity *int    `json:"quantity"`
	Store    *string `json:"store"`
	Category *string `json:"category"`
	Notes    *string `json:"notes"`
}

// updateItemRequest is a sparse patch: absent and null fields are left untouched.
type updateItemRequest struct {
	Name        *string `json:"name"`
	Quantity    *int    `json:"quantity"`
	Store       *string `json:"store"`
	Category    *string `json:"category"`
	Notes       *string `json:"notes"`
	IsPurchased *bool   `json:"isPurchased"`
}

type itemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Store       *string   `json:"store,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	IsPurchased bool      `json:"isPurchased"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toItemResponse(it *domain.GroceryItem) itemResponse {
	return itemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Quantity:    it.Quantity,
		Store:       it.Store,
		Category:    it.Category,
		Notes:       it.Notes,
		IsPurchased: it.IsPurchased,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

// itemID parses the :id path parameter. Anything but a positive integer is rejected
// before the item is looked up.
func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidItemID})
		return 0, false
	}
	return id, true
}

// GET /api/grocery-items
func (h *ItemHandler) List(c *gin.Context) {
	input := usecase.ListItemsInput{
		Category: optionalQuery(c, "category"),
		Store:    optionalQuery(c, "store"),
		Search:   optionalQuery(c, "search"),
	}
	if raw := optionalQuery(c, "isPurchased"); raw != nil {
		if *raw != "true" && *raw != "false" {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBool})
			return
		}
		v := *raw == "true"
		input.IsPurchased = &v
	}

	items, err := h.itemUsecase.ListItems(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, h.logger, "list items", err)
		return
	}

	resp := make([]itemResponse, len(items))
	for i, it := range items {
		resp[i] = toItemResponse(it)
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Grocery items retrieved successfully",
		"items":   resp,
		"count":   len(resp),
	})
}

// POST /api/grocery-items
func (h *ItemHandler) Create(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	item, err := h.itemUsecase.CreateItem(c.Request.Context(), middleware.UserID(c), usecase.CreateItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Store:    req.Store,
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, h.logger, "create item", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Grocery item created successfully", "item": toItemResponse(item)})
}

// GET /api/grocery-items/:id
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	item, err := h.itemUsecase.GetItem(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, "get item", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Grocery item retrieved successfully", "item": toItemResponse(item)})
}

// PUT /api/grocery-items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	item, err := h.itemUsecase.UpdateItem(c.Request.Context(), id, middleware.UserID(c), usecase.UpdateItemInput{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Store:       req.Store,
		Category:    req.Category,
		Notes:       req.Notes,
		IsPurchased: req.IsPurchased,
	})
	if err != nil {
		respondError(c, h.logger, "update item", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Grocery item updated successfully", "item": toItemResponse(item)})
}

// DELETE /api/grocery-items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	if err := h.itemUsecase.DeleteItem(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, h.logger, "delete item", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Grocery item deleted successfully"})
}

// POST /api/grocery-items/:id/purchased
func (h *ItemHandler) MarkPurchased(c *gin.Context) {
	h.setPurchased(c, true)
}

// DELETE /api/grocery-items/:id/purchased
func (h *ItemHandler) MarkNotPurchased(c *gin.Context) {
	h.setPurchased(c, false)
}

func (h *ItemHandler) setPurchased(c *gin.Context, purchased bool) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var (
		item    *domain.GroceryItem
		err     error
		message string
	)
	if purchased {
		item, err = h.itemUsecase.MarkPurchased(c.Request.Context(), id, middleware.UserID(c))
		message = "Grocery item marked as purchased"
	} else {
		item, err = h.itemUsecase.MarkNotPurchased(c.Request.Context(), id, middleware.UserID(c))
		message = "Grocery item marked as not purchased"
	}
	if err != nil {
		respondError(c, h.logger, "set purchased", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "item": toItemResponse(item)})
}

// optionalQuery returns nil for a missing or empty query parameter.
func optionalQuery(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}
