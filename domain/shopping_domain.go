package domain

import (
	"Foodia-Shopping/pkg/shopping/quantity"
	"errors"
	"time"
)

var (
	MessageSuccessAddShoppingItem    = "shopping item added successfully"
	MessageSuccessMergeShoppingItem  = "shopping item merged into existing entry"
	MessageSuccessUpdateShoppingItem = "shopping item updated successfully"
	MessageSuccessToggleShoppingItem = "shopping item status updated successfully"
	MessageSuccessDeleteShoppingItem = "shopping item deleted successfully"
	MessageSuccessGetShoppingList    = "shopping list retrieved successfully"
	MessageSuccessImportIngredients  = "ingredients imported successfully"
	MessageSuccessClearCompleted     = "completed items cleared successfully"
	MessageSuccessShareShoppingList  = "shopping list sent successfully"

	MessageFailedAddShoppingItem    = "failed to add shopping item"
	MessageFailedUpdateShoppingItem = "failed to update shopping item"
	MessageFailedToggleShoppingItem = "failed to update shopping item status"
	MessageFailedDeleteShoppingItem = "failed to delete shopping item"
	MessageFailedGetShoppingList    = "failed to retrieve shopping list"
	MessageFailedImportIngredients  = "failed to import ingredients"
	MessageFailedClearCompleted     = "failed to clear completed items"
	MessageFailedShareShoppingList  = "failed to send shopping list"

	ErrEmptyItemName        = errors.New("enter an item name first")
	ErrShoppingItemNotFound = errors.New("shopping item not found")
	ErrUnauthorizedAccess   = errors.New("unauthorized access to shopping item")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidCategory      = errors.New("invalid shopping category")
	ErrNoIngredientLines    = errors.New("no ingredient lines to import")
	ErrInvalidToggle        = errors.New("completed must be set")
)

type (
	AddShoppingItemRequest struct {
		Name           string             `json:"name"`
		Quantity       *quantity.Quantity `json:"quantity,omitempty"`
		Category       string             `json:"category,omitempty" validate:"omitempty,shopping_category"`
		SourceRecipeID string             `json:"source_recipe_id,omitempty" validate:"omitempty,uuid"`
	}

	AddShoppingItemResponse struct {
		Item   ShoppingItemResponse `json:"item"`
		Merged bool                 `json:"merged"`
	}

	ImportIngredientsRequest struct {
		Lines          []string `json:"lines" validate:"required,min=1"`
		SourceRecipeID string   `json:"source_recipe_id,omitempty" validate:"omitempty,uuid"`
	}

	ImportIngredientsResponse struct {
		Created int `json:"created"`
		Merged  int `json:"merged"`
		Skipped int `json:"skipped"`
	}

	UpdateShoppingItemRequest struct {
		Name     *string            `json:"name,omitempty"`
		Quantity *quantity.Quantity `json:"quantity,omitempty"`
		Category *string            `json:"category,omitempty" validate:"omitempty,shopping_category"`
	}

	ToggleShoppingItemRequest struct {
		Completed *bool `json:"completed" validate:"required"`
	}

	ShareShoppingListRequest struct {
		Email            string `json:"email" validate:"required,email"`
		IncludeCompleted bool   `json:"include_completed"`
	}

	ShoppingItemResponse struct {
		ID                string            `json:"id"`
		DisplayName       string            `json:"display_name"`
		Quantity          quantity.Quantity `json:"quantity"`
		Category          Category          `json:"category"`
		Completed         bool              `json:"completed"`
		SourceRecipeID    string            `json:"source_recipe_id,omitempty"`
		SourceRecipeTitle string            `json:"source_recipe_title,omitempty"`
		CreatedAt         time.Time         `json:"created_at"`
		UpdatedAt         time.Time         `json:"updated_at"`
	}

	ShoppingSection struct {
		Category Category               `json:"category"`
		Items    []ShoppingItemResponse `json:"items"`
	}

	ShoppingListResponse struct {
		Sections       []ShoppingSection `json:"sections"`
		TotalItems     int               `json:"total_items"`
		ActiveItems    int               `json:"active_items"`
		CompletedItems int               `json:"completed_items"`
	}

	ClearCompletedResponse struct {
		Deleted int64 `json:"deleted"`
	}
)
