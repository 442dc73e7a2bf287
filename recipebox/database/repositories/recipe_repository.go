package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"recipebox/recipebox/database/models"
)

type RecipeRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	CreateIfAbsent(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
}

type recipeRepository struct {
	*BaseRepository
}

func NewRecipeRepository(db *bun.DB) RecipeRepository {
	return &recipeRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	recipe := new(models.Recipe)
	err := r.DB().NewSelect().
		Model(recipe).
		Where("id = ?", id).
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "recipe", id, err)
	}
	return recipe, nil
}

// CreateIfAbsent inserts the recipe unless a row with the same id already
// exists. Two callers racing on the same absent id both reach the insert; the
// loser's write is discarded by ON CONFLICT DO NOTHING and the winner's row is
// returned to both. No duplicate-key error ever escapes.
func (r *recipeRepository) CreateIfAbsent(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	recipe.CreatedAt = time.Now()
	res, err := r.DB().NewInsert().
		Model(recipe).
		On("CONFLICT (id) DO NOTHING").
		Exec(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("create", "recipe", recipe.ID, err)
	}

	if affected, _ := res.RowsAffected(); affected > 0 {
		return recipe, nil
	}
	// Lost the race; hand back the row that won.
	return r.GetByID(ctx, recipe.ID)
}
