package store

import "time"

// Recipe 使用者的食譜
type Recipe struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	Title        string    `json:"title"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecipeIngredient 食譜中可解析的一行食材
type RecipeIngredient struct {
	Position int     `json:"position"`
	Line     string  `json:"line"`
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
}

// MealPlanEntry 排在某一天的食譜
type MealPlanEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	PlanDate    string    `json:"plan_date"`
	RecipeID    string    `json:"recipe_id,omitempty"`
	RecipeTitle string    `json:"recipe_title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
