package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, APIKey: "test-key", TimeoutSeconds: 2})
}

func TestGetRecipe(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantTitle   string
		wantErr     error
		unavailable bool
	}{
		{
			name: "success maps catalog fields",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/recipes/42/information" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.URL.Query().Get("apiKey") != "test-key" {
					t.Errorf("missing apiKey in %s", r.URL.RawQuery)
				}
				w.Write([]byte(`{"id":42,"title":"Soup","image":"i.png","sourceUrl":"s","servings":4,"readyInMinutes":30}`))
			},
			wantTitle: "Soup",
		},
		{
			name: "404 becomes ErrNotFound",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"status":"failure","code":404}`))
			},
			wantErr: ErrNotFound,
		},
		{
			name: "server error becomes unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			unavailable: true,
		},
		{
			name: "payload without title becomes unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"id":42,"image":"i.png"}`))
			},
			unavailable: true,
		},
		{
			name: "non-JSON payload becomes unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>rate limited</html>`))
			},
			unavailable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newTestClient(srv.URL)
			info, err := client.GetRecipe(context.Background(), 42)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetRecipe() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if tt.unavailable {
				if !IsUnavailable(err) {
					t.Fatalf("GetRecipe() error = %v, want UnavailableError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetRecipe() error = %v", err)
			}
			if info.Title != tt.wantTitle {
				t.Errorf("GetRecipe() title = %q, want %q", info.Title, tt.wantTitle)
			}
			if info.ID != 42 || info.Servings != 4 || info.ReadyInMinutes != 30 {
				t.Errorf("GetRecipe() = %+v, fields not mapped", info)
			}
		})
	}
}

func TestGetRecipeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"id":42,"title":"Soup"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetRecipe(ctx, 42)
	if !IsUnavailable(err) {
		t.Fatalf("GetRecipe() with expired context error = %v, want UnavailableError", err)
	}
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/complexSearch" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "soup" {
			t.Errorf("query = %q, want soup", q.Get("query"))
		}
		if q.Get("intolerances") != "Dairy,Peanut" {
			t.Errorf("intolerances = %q", q.Get("intolerances"))
		}
		if q.Get("maxReadyTime") != "45" {
			t.Errorf("maxReadyTime = %q", q.Get("maxReadyTime"))
		}
		w.Write([]byte(`{"results":[{"id":1,"title":"Tomato Soup"}],"offset":0,"number":6,"totalResults":1}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.Search(context.Background(), SearchParams{
		Query:        "soup",
		MaxReadyTime: 45,
		Intolerances: []string{"Dairy", "Peanut"},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Results) != 1 || result.Results[0].Title != "Tomato Soup" {
		t.Errorf("Search() = %+v", result)
	}
}

func TestRandom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/random" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("number") != "4" {
			t.Errorf("number = %q, want 4", r.URL.Query().Get("number"))
		}
		w.Write([]byte(`{"recipes":[{"id":7,"title":"Miso Soup"},{"id":8,"title":"Ramen"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	recipes, err := client.Random(context.Background(), 4)
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}
	if len(recipes) != 2 || recipes[0].Title != "Miso Soup" {
		t.Errorf("Random() = %+v", recipes)
	}
}

func TestRandomUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.Random(context.Background(), 4); !IsUnavailable(err) {
		t.Fatalf("Random() error = %v, want UnavailableError", err)
	}
}

func TestSimilar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/42/similar" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("number") != "3" {
			t.Errorf("number = %q, want 3", r.URL.Query().Get("number"))
		}
		w.Write([]byte(`[{"id":91,"title":"Gazpacho","readyInMinutes":15,"servings":2}]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	similar, err := client.Similar(context.Background(), 42, 0)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if len(similar) != 1 || similar[0].Title != "Gazpacho" || similar[0].ReadyInMinutes != 15 {
		t.Errorf("Similar() = %+v", similar)
	}
}

func TestSimilarNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.Similar(context.Background(), 42, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Similar() error = %v, want ErrNotFound", err)
	}
}
