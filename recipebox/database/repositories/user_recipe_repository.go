package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"recipebox/recipebox/database/models"
)

type UserRecipeRepository interface {
	Save(ctx context.Context, userID, recipeID int64) (*models.UserRecipe, error)
	Remove(ctx context.Context, userID, recipeID int64) error
	UpdateNotes(ctx context.Context, userID, recipeID int64, notes string) (*models.UserRecipe, error)
	Get(ctx context.Context, userID, recipeID int64) (*models.UserRecipe, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.SavedRecipe, error)
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
}

type userRecipeRepository struct {
	*BaseRepository
}

func NewUserRecipeRepository(db *bun.DB) UserRecipeRepository {
	return &userRecipeRepository{BaseRepository: NewBaseRepository(db)}
}

// Save creates the (user, recipe) link with empty notes if it does not exist
// yet. Re-saving is a no-op by design: repeated clicks on a save button are
// expected, so the composite-key conflict is swallowed and the existing row
// returned with its notes intact.
func (r *userRecipeRepository) Save(ctx context.Context, userID, recipeID int64) (*models.UserRecipe, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	link := &models.UserRecipe{
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	res, err := r.DB().NewInsert().
		Model(link).
		On("CONFLICT (user_id, recipe_id) DO NOTHING").
		Exec(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("save", "user_recipe", pairID(userID, recipeID), err)
	}

	if affected, _ := res.RowsAffected(); affected > 0 {
		return link, nil
	}
	return r.Get(ctx, userID, recipeID)
}

// Remove deletes the link. A missing row is a NotFoundError, never a silent
// success, so callers can distinguish "unsaved" from "was never saved".
func (r *userRecipeRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.DB().NewDelete().
		Model((*models.UserRecipe)(nil)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Exec(timeoutCtx)
	if err != nil {
		return r.HandleErrorWithID("remove", "user_recipe", pairID(userID, recipeID), err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "user_recipe", ID: pairID(userID, recipeID)}
	}
	return nil
}

// UpdateNotes replaces the notes on an existing link. Notes cannot be
// attached to a recipe the user has not saved.
func (r *userRecipeRepository) UpdateNotes(ctx context.Context, userID, recipeID int64, notes string) (*models.UserRecipe, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.DB().NewUpdate().
		Model((*models.UserRecipe)(nil)).
		Set("notes = ?", notes).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Exec(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("update_notes", "user_recipe", pairID(userID, recipeID), err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, &NotFoundError{Entity: "user_recipe", ID: pairID(userID, recipeID)}
	}

	return r.Get(ctx, userID, recipeID)
}

func (r *userRecipeRepository) Get(ctx context.Context, userID, recipeID int64) (*models.UserRecipe, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	link := new(models.UserRecipe)
	err := r.DB().NewSelect().
		Model(link).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "user_recipe", pairID(userID, recipeID), err)
	}
	return link, nil
}

// ListByUserID joins the user's links with the cached recipe summaries,
// most recently saved first.
func (r *userRecipeRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.SavedRecipe, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var saved []*models.SavedRecipe
	err := r.DB().NewSelect().
		Model((*models.UserRecipe)(nil)).
		ColumnExpr("ur.recipe_id AS recipe_id").
		ColumnExpr("r.name, r.image_url, r.source_url, r.servings, r.ready_in_minutes").
		ColumnExpr("ur.notes").
		Join("JOIN recipes AS r ON r.id = ur.recipe_id").
		Where("ur.user_id = ?", userID).
		OrderExpr("ur.created_at DESC").
		Scan(timeoutCtx, &saved)
	if err != nil {
		return nil, r.HandleErrorWithID("list", "user_recipe", userID, err)
	}
	return saved, nil
}

func (r *userRecipeRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.DB().NewSelect().
		Model((*models.UserRecipe)(nil)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Exists(timeoutCtx)
	if err != nil {
		return false, r.HandleErrorWithID("exists", "user_recipe", pairID(userID, recipeID), err)
	}
	return exists, nil
}

func pairID(userID, recipeID int64) string {
	return fmt.Sprintf("(%d,%d)", userID, recipeID)
}
