package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"recipebox/recipebox/catalog"
	"recipebox/recipebox/database/models"
	"recipebox/recipebox/database/repositories"
)

const recipeMemoSize = 1024

// CatalogClient is the slice of the catalog API the cache needs.
type CatalogClient interface {
	GetRecipe(ctx context.Context, id int64) (*catalog.RecipeInfo, error)
}

// ImageMirror copies a recipe image into local object storage and returns the
// URL to serve instead. Optional; mirroring failures must not fail a fetch.
type ImageMirror interface {
	MirrorRecipeImage(ctx context.Context, recipeID int64, srcURL string) (string, error)
}

// RecipeCache lazily persists catalog recipes on first reference. A row, once
// written, is returned as-is forever: no freshness checks, no refreshes, at
// most one catalog call per distinct id.
type RecipeCache struct {
	recipes repositories.RecipeRepository
	catalog CatalogClient
	mirror  ImageMirror
	memo    *lru.Cache
	group   singleflight.Group
}

func NewRecipeCache(recipes repositories.RecipeRepository, catalogClient CatalogClient, mirror ImageMirror) *RecipeCache {
	memo, _ := lru.New(recipeMemoSize)
	return &RecipeCache{
		recipes: recipes,
		catalog: catalogClient,
		mirror:  mirror,
		memo:    memo,
	}
}

// EnsureRecipe returns the locally persisted recipe for the catalog id,
// fetching and persisting it first if this is the id's first reference.
// Concurrent first references collapse onto a single fetch, and a lost insert
// race resolves to the winner's row. Failures persist nothing and are never
// memoized.
func (s *RecipeCache) EnsureRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	if cached, ok := s.memo.Get(id); ok {
		return cached.(*models.Recipe), nil
	}

	v, err, shared := s.group.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		return s.ensure(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Recipe fetch shared between concurrent callers",
			slog.Int64("recipe_id", id))
	}

	recipe := v.(*models.Recipe)
	s.memo.Add(id, recipe)
	return recipe, nil
}

func (s *RecipeCache) ensure(ctx context.Context, id int64) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err == nil {
		return recipe, nil
	}
	if !repositories.IsNotFound(err) {
		return nil, err
	}

	start := time.Now()
	info, err := s.catalog.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	recipe = &models.Recipe{
		ID:             id,
		Name:           info.Title,
		ImageURL:       info.Image,
		SourceURL:      info.SourceURL,
		Servings:       info.Servings,
		ReadyInMinutes: info.ReadyInMinutes,
	}
	if recipe.ImageURL == "" {
		recipe.ImageURL = models.DefaultImageURL
	}

	if s.mirror != nil && info.Image != "" {
		if mirrored, err := s.mirror.MirrorRecipeImage(ctx, id, info.Image); err != nil {
			slog.Warn("Recipe image mirror failed, keeping catalog URL",
				slog.Int64("recipe_id", id),
				slog.Any("error", err))
		} else {
			recipe.ImageURL = mirrored
		}
	}

	persisted, err := s.recipes.CreateIfAbsent(ctx, recipe)
	if err != nil {
		return nil, err
	}

	slog.Info("Recipe cached from catalog",
		slog.Int64("recipe_id", id),
		slog.String("name", persisted.Name),
		slog.Duration("took", time.Since(start)))

	return persisted, nil
}
