package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"recipebox/recipebox/database/models"
	"recipebox/recipebox/database/repositories"
	"recipebox/recipebox/services/mock"
)

func TestCollectionService_Save(t *testing.T) {
	ctrl := gomock.NewController(t)

	links := mock.NewMockUserRecipeRepository(ctrl)
	ensurer := mock.NewMockRecipeEnsurer(ctrl)

	want := &models.UserRecipe{UserID: 1, RecipeID: 42}

	ensurer.EXPECT().
		EnsureRecipe(gomock.Any(), int64(42)).
		Return(&models.Recipe{ID: 42, Name: "Pasta Carbonara"}, nil)

	links.EXPECT().
		Save(gomock.Any(), int64(1), int64(42)).
		Return(want, nil)

	s := NewCollectionService(links, ensurer)

	got, err := s.Save(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Save() got = %v, want %v", got, want)
	}
}

func TestCollectionService_Save_RepeatKeepsNotes(t *testing.T) {
	ctrl := gomock.NewController(t)

	links := mock.NewMockUserRecipeRepository(ctrl)
	ensurer := mock.NewMockRecipeEnsurer(ctrl)

	existing := &models.UserRecipe{UserID: 1, RecipeID: 42, Notes: "swap cream for creme fraiche"}

	ensurer.EXPECT().
		EnsureRecipe(gomock.Any(), int64(42)).
		Return(&models.Recipe{ID: 42, Name: "Pasta Carbonara"}, nil).
		Times(2)

	// The repository swallows the composite-key conflict and hands back the
	// single existing row on every save of the same pair.
	links.EXPECT().
		Save(gomock.Any(), int64(1), int64(42)).
		Return(existing, nil).
		Times(2)

	s := NewCollectionService(links, ensurer)

	first, err := s.Save(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := s.Save(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	if second.Notes != "swap cream for creme fraiche" {
		t.Errorf("second Save() notes = %q, want existing notes preserved", second.Notes)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Save() returned different rows: %v vs %v", first, second)
	}
}

func TestCollectionService_Save_FetchFailurePersistsNoLink(t *testing.T) {
	ctrl := gomock.NewController(t)

	links := mock.NewMockUserRecipeRepository(ctrl)
	ensurer := mock.NewMockRecipeEnsurer(ctrl)

	fetchErr := errors.New("catalog unreachable")

	ensurer.EXPECT().
		EnsureRecipe(gomock.Any(), int64(42)).
		Return(nil, fetchErr)

	// No Save expectation: the link must never be written.

	s := NewCollectionService(links, ensurer)

	if _, err := s.Save(context.Background(), 1, 42); !errors.Is(err, fetchErr) {
		t.Errorf("Save() error = %v, want %v", err, fetchErr)
	}
}

func TestCollectionService_Unsave(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{
			name: "Success",
		},
		{
			name:    "NotSaved",
			repoErr: &repositories.NotFoundError{Entity: "user_recipe", ID: "(1,42)"},
			wantErr: ErrNotSaved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			links := mock.NewMockUserRecipeRepository(ctrl)
			links.EXPECT().
				Remove(gomock.Any(), int64(1), int64(42)).
				Return(tt.repoErr)

			s := NewCollectionService(links, nil)

			err := s.Unsave(context.Background(), 1, 42)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Unsave() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCollectionService_UpdateNotes(t *testing.T) {
	tests := []struct {
		name    string
		notes   string
		repoRet *models.UserRecipe
		repoErr error
		wantErr error
	}{
		{
			name:    "Success",
			notes:   "less salt next time",
			repoRet: &models.UserRecipe{UserID: 1, RecipeID: 42, Notes: "less salt next time"},
		},
		{
			name:    "ClearNotes",
			notes:   "",
			repoRet: &models.UserRecipe{UserID: 1, RecipeID: 42, Notes: ""},
		},
		{
			name:    "NotSaved",
			notes:   "anything",
			repoErr: &repositories.NotFoundError{Entity: "user_recipe", ID: "(1,42)"},
			wantErr: ErrNotSaved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			links := mock.NewMockUserRecipeRepository(ctrl)
			links.EXPECT().
				UpdateNotes(gomock.Any(), int64(1), int64(42), tt.notes).
				Return(tt.repoRet, tt.repoErr)

			s := NewCollectionService(links, nil)

			got, err := s.UpdateNotes(context.Background(), 1, 42, tt.notes)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateNotes() error = %v, want %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.repoRet) {
				t.Errorf("UpdateNotes() got = %v, want %v", got, tt.repoRet)
			}
		})
	}
}

func TestCollectionService_List_PreservesRepositoryOrder(t *testing.T) {
	ctrl := gomock.NewController(t)

	links := mock.NewMockUserRecipeRepository(ctrl)
	ensurer := mock.NewMockRecipeEnsurer(ctrl)

	// The repository returns newest save first; List must not reorder.
	want := []*models.SavedRecipe{
		{RecipeID: 3, Name: "Miso Soup"},
		{RecipeID: 2, Name: "Chicken Pasta Bake"},
		{RecipeID: 1, Name: "Pasta Carbonara"},
	}

	links.EXPECT().
		ListByUserID(gomock.Any(), int64(1)).
		Return(want, nil)

	s := NewCollectionService(links, ensurer)

	got, err := s.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() got = %v, want %v", got, want)
	}
}

func TestCollectionService_SearchSaved(t *testing.T) {
	saved := []*models.SavedRecipe{
		{RecipeID: 1, Name: "Pasta Carbonara"},
		{RecipeID: 2, Name: "Miso Soup"},
		{RecipeID: 3, Name: "Chicken Pasta Bake"},
	}

	tests := []struct {
		name  string
		query string
		want  []*models.SavedRecipe
	}{
		{
			name:  "EmptyQueryReturnsAll",
			query: "",
			want:  saved,
		},
		{
			name:  "FuzzyMatch",
			query: "pasta",
			want: []*models.SavedRecipe{
				{RecipeID: 1, Name: "Pasta Carbonara"},
				{RecipeID: 3, Name: "Chicken Pasta Bake"},
			},
		},
		{
			name:  "NoMatch",
			query: "zzzz",
			want:  []*models.SavedRecipe{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			links := mock.NewMockUserRecipeRepository(ctrl)
			links.EXPECT().
				ListByUserID(gomock.Any(), int64(1)).
				Return(saved, nil)

			s := NewCollectionService(links, nil)

			got, err := s.SearchSaved(context.Background(), 1, tt.query)
			if err != nil {
				t.Fatalf("SearchSaved() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchSaved() got = %v, want %v", got, tt.want)
			}
		})
	}
}
