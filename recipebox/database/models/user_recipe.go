package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserRecipe links a user to a cached recipe with the user's private notes.
// The composite primary key enforces at most one link per (user, recipe) pair.
type UserRecipe struct {
	bun.BaseModel `bun:"table:user_recipes,alias:ur"`

	UserID    int64     `bun:"user_id,pk" json:"user_id"`
	RecipeID  int64     `bun:"recipe_id,pk" json:"recipe_id"`
	Notes     string    `bun:"notes,notnull,default:''" json:"notes"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// SavedRecipe is the read model for a user's collection listing: the recipe
// summary joined with that user's notes.
type SavedRecipe struct {
	RecipeID       int64  `bun:"recipe_id" json:"recipe_id"`
	Name           string `bun:"name" json:"name"`
	ImageURL       string `bun:"image_url" json:"image_url"`
	SourceURL      string `bun:"source_url" json:"source_url"`
	Servings       int    `bun:"servings" json:"servings"`
	ReadyInMinutes int    `bun:"ready_in_minutes" json:"ready_in_minutes"`
	Notes          string `bun:"notes" json:"notes"`
}
