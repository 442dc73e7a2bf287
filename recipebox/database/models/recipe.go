package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DefaultImageURL is stored for recipes whose catalog record carries no image.
const DefaultImageURL = "https://f0.pngfuel.com/png/312/993/bowl-with-stick-sticker-beer-vegetarian-cuisine-hamburger-japanese-cuisine-food-food-icon-png-clip-art.png"

// Recipe is a locally cached copy of a catalog recipe. The primary key is the
// external catalog's id, never a locally generated one, so the row doubles as
// the join key back to the catalog. Rows are written once on first reference
// and never refreshed.
type Recipe struct {
	bun.BaseModel `bun:"table:recipes,alias:r"`

	ID             int64     `bun:"id,pk" json:"id"`
	Name           string    `bun:"name,notnull" json:"name"`
	ImageURL       string    `bun:"image_url,notnull" json:"image_url"`
	SourceURL      string    `bun:"source_url" json:"source_url"`
	Servings       int       `bun:"servings" json:"servings"`
	ReadyInMinutes int       `bun:"ready_in_minutes" json:"ready_in_minutes"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
