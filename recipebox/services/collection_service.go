package services

import (
	"context"
	"log/slog"

	"github.com/sahilm/fuzzy"

	"recipebox/recipebox/database/models"
	"recipebox/recipebox/database/repositories"
)

// RecipeEnsurer resolves a catalog id to a locally persisted recipe row.
type RecipeEnsurer interface {
	EnsureRecipe(ctx context.Context, id int64) (*models.Recipe, error)
}

// CollectionService manages each user's set of saved recipes and the notes
// attached to them.
type CollectionService struct {
	links   repositories.UserRecipeRepository
	ensurer RecipeEnsurer
}

func NewCollectionService(links repositories.UserRecipeRepository, ensurer RecipeEnsurer) *CollectionService {
	return &CollectionService{
		links:   links,
		ensurer: ensurer,
	}
}

// Save adds the recipe to the user's collection, pulling it into the local
// store first if this is its first reference. Saving an already saved recipe
// is a no-op that keeps any existing notes.
func (s *CollectionService) Save(ctx context.Context, userID, recipeID int64) (*models.UserRecipe, error) {
	if _, err := s.ensurer.EnsureRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	link, err := s.links.Save(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	slog.Info("Recipe saved to collection",
		slog.Int64("user_id", userID),
		slog.Int64("recipe_id", recipeID))

	return link, nil
}

// Unsave removes the recipe from the user's collection. Removing a recipe
// that is not in the collection returns ErrNotSaved.
func (s *CollectionService) Unsave(ctx context.Context, userID, recipeID int64) error {
	if err := s.links.Remove(ctx, userID, recipeID); err != nil {
		if repositories.IsNotFound(err) {
			return ErrNotSaved
		}
		return err
	}

	slog.Info("Recipe removed from collection",
		slog.Int64("user_id", userID),
		slog.Int64("recipe_id", recipeID))

	return nil
}

// UpdateNotes replaces the notes on a saved recipe. The recipe must already
// be in the user's collection; otherwise ErrNotSaved is returned.
func (s *CollectionService) UpdateNotes(ctx context.Context, userID, recipeID int64, notes string) (*models.UserRecipe, error) {
	link, err := s.links.UpdateNotes(ctx, userID, recipeID, notes)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrNotSaved
		}
		return nil, err
	}
	return link, nil
}

// Get returns a single saved entry with its notes, or ErrNotSaved.
func (s *CollectionService) Get(ctx context.Context, userID, recipeID int64) (*models.UserRecipe, error) {
	link, err := s.links.Get(ctx, userID, recipeID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrNotSaved
		}
		return nil, err
	}
	return link, nil
}

// List returns every recipe in the user's collection, newest save first.
func (s *CollectionService) List(ctx context.Context, userID int64) ([]*models.SavedRecipe, error) {
	return s.links.ListByUserID(ctx, userID)
}

// SearchSaved fuzzy-matches the query against the names of the user's saved
// recipes. An empty query returns the whole collection.
func (s *CollectionService) SearchSaved(ctx context.Context, userID int64, query string) ([]*models.SavedRecipe, error) {
	saved, err := s.links.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return saved, nil
	}

	names := make([]string, len(saved))
	for i, r := range saved {
		names[i] = r.Name
	}

	matches := fuzzy.Find(query, names)
	results := make([]*models.SavedRecipe, 0, len(matches))
	for _, m := range matches {
		results = append(results, saved[m.Index])
	}
	return results, nil
}
