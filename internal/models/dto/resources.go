package dto

type CreateMealRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Instructions *string `json:"instructions"`
	Servings     *int    `json:"servings"`
	PrepTime     *int    `json:"prepTime"`
	CookTime     *int    `json:"cookTime"`
}

// CreatePlannedMealRequest keeps ids and dates as raw strings so that
// malformed values can be reported as lookup misses or validation errors.
type CreatePlannedMealRequest struct {
	MealID      string `json:"mealId"`
	PlannedDate string `json:"plannedDate"`
	MealType    string `json:"mealType"`
	Servings    *int   `json:"servings"`
}

type CreateIngredientRequest struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Category *string `json:"category"`
}

type CreateInventoryItemRequest struct {
	IngredientID   string  `json:"ingredientId"`
	Quantity       float64 `json:"quantity"`
	ExpirationDate *string `json:"expirationDate"`
	Location       *string `json:"location"`
	Notes          *string `json:"notes"`
	IsReserved     bool    `json:"isReserved"`
}

type ShoppingListItemInput struct {
	IngredientID string  `json:"ingredientId"`
	Quantity     float64 `json:"quantity"`
	Notes        *string `json:"notes"`
}

type CreateShoppingListRequest struct {
	Name  string                  `json:"name"`
	Items []ShoppingListItemInput `json:"items"`
}

type UpdateShoppingItemRequest struct {
	IsPurchased *bool `json:"isPurchased"`
}

type UpdateUserRequest struct {
	IsAdmin *bool `json:"isAdmin"`
}

// MessageResponse is the body of confirmations and errors alike.
type MessageResponse struct {
	Message string `json:"message"`
}
