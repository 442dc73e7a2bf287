package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"recipebox/recipebox/catalog"
	"recipebox/recipebox/database/models"
	"recipebox/recipebox/database/repositories"
	"recipebox/recipebox/services/mock"
)

func notFound(id int64) error {
	return &repositories.NotFoundError{Entity: "recipe", ID: id}
}

func TestRecipeCache_EnsureRecipe_FetchesAndPersistsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mock.NewMockRecipeRepository(ctrl)
	cat := mock.NewMockCatalogClient(ctrl)

	want := &models.Recipe{
		ID:             42,
		Name:           "Pasta Carbonara",
		ImageURL:       "https://img.example.com/42.jpg",
		SourceURL:      "https://example.com/carbonara",
		Servings:       4,
		ReadyInMinutes: 30,
	}

	repo.EXPECT().
		GetByID(gomock.Any(), int64(42)).
		Return(nil, notFound(42)).
		Times(1)

	cat.EXPECT().
		GetRecipe(gomock.Any(), int64(42)).
		Return(&catalog.RecipeInfo{
			ID:             42,
			Title:          "Pasta Carbonara",
			Image:          "https://img.example.com/42.jpg",
			SourceURL:      "https://example.com/carbonara",
			Servings:       4,
			ReadyInMinutes: 30,
		}, nil).
		Times(1)

	repo.EXPECT().
		CreateIfAbsent(gomock.Any(), gomock.Any()).
		Return(want, nil).
		Times(1)

	cache := NewRecipeCache(repo, cat, nil)

	got, err := cache.EnsureRecipe(context.Background(), 42)
	if err != nil {
		t.Fatalf("EnsureRecipe() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EnsureRecipe() got = %v, want %v", got, want)
	}

	// Second call must come out of the memo with no repository or
	// catalog traffic; the Times(1) expectations above enforce that.
	got, err = cache.EnsureRecipe(context.Background(), 42)
	if err != nil {
		t.Fatalf("EnsureRecipe() second call error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EnsureRecipe() second call got = %v, want %v", got, want)
	}
}

func TestRecipeCache_EnsureRecipe_ReturnsExistingRowWithoutFetch(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mock.NewMockRecipeRepository(ctrl)
	cat := mock.NewMockCatalogClient(ctrl)

	want := &models.Recipe{ID: 7, Name: "Miso Soup", ImageURL: models.DefaultImageURL}

	repo.EXPECT().
		GetByID(gomock.Any(), int64(7)).
		Return(want, nil)

	cache := NewRecipeCache(repo, cat, nil)

	got, err := cache.EnsureRecipe(context.Background(), 7)
	if err != nil {
		t.Fatalf("EnsureRecipe() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EnsureRecipe() got = %v, want %v", got, want)
	}
}

func TestRecipeCache_EnsureRecipe_NotFoundPersistsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mock.NewMockRecipeRepository(ctrl)
	cat := mock.NewMockCatalogClient(ctrl)

	repo.EXPECT().
		GetByID(gomock.Any(), int64(99)).
		Return(nil, notFound(99)).
		Times(2)

	cat.EXPECT().
		GetRecipe(gomock.Any(), int64(99)).
		Return(nil, catalog.ErrNotFound).
		Times(2)

	cache := NewRecipeCache(repo, cat, nil)

	if _, err := cache.EnsureRecipe(context.Background(), 99); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("EnsureRecipe() error = %v, want catalog.ErrNotFound", err)
	}

	// Failures are not memoized: the next call retries the catalog.
	if _, err := cache.EnsureRecipe(context.Background(), 99); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("EnsureRecipe() retry error = %v, want catalog.ErrNotFound", err)
	}
}

func TestRecipeCache_EnsureRecipe_EmptyImageGetsPlaceholder(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mock.NewMockRecipeRepository(ctrl)
	cat := mock.NewMockCatalogClient(ctrl)

	repo.EXPECT().
		GetByID(gomock.Any(), int64(5)).
		Return(nil, notFound(5))

	cat.EXPECT().
		GetRecipe(gomock.Any(), int64(5)).
		Return(&catalog.RecipeInfo{ID: 5, Title: "Plain Rice"}, nil)

	repo.EXPECT().
		CreateIfAbsent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, recipe *models.Recipe) (*models.Recipe, error) {
			if recipe.ImageURL != models.DefaultImageURL {
				t.Errorf("persisted ImageURL = %q, want placeholder", recipe.ImageURL)
			}
			return recipe, nil
		})

	cache := NewRecipeCache(repo, cat, nil)

	if _, err := cache.EnsureRecipe(context.Background(), 5); err != nil {
		t.Fatalf("EnsureRecipe() error = %v", err)
	}
}

func TestRecipeCache_EnsureRecipe_MirrorFailureKeepsCatalogURL(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mock.NewMockRecipeRepository(ctrl)
	cat := mock.NewMockCatalogClient(ctrl)

	repo.EXPECT().
		GetByID(gomock.Any(), int64(11)).
		Return(nil, notFound(11))

	cat.EXPECT().
		GetRecipe(gomock.Any(), int64(11)).
		Return(&catalog.RecipeInfo{ID: 11, Title: "Ramen", Image: "https://img.example.com/11.jpg"}, nil)

	repo.EXPECT().
		CreateIfAbsent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, recipe *models.Recipe) (*models.Recipe, error) {
			if recipe.ImageURL != "https://img.example.com/11.jpg" {
				t.Errorf("persisted ImageURL = %q, want catalog URL", recipe.ImageURL)
			}
			return recipe, nil
		})

	cache := NewRecipeCache(repo, cat, failingMirror{})

	if _, err := cache.EnsureRecipe(context.Background(), 11); err != nil {
		t.Fatalf("EnsureRecipe() error = %v", err)
	}
}

type failingMirror struct{}

func (failingMirror) MirrorRecipeImage(context.Context, int64, string) (string, error) {
	return "", errors.New("bucket unreachable")
}
