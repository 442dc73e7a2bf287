// Package catalog talks to the external recipe catalog (a
// Spoonacular-compatible HTTP API). All upstream failures are translated into
// the package's typed errors at this boundary; callers never see raw HTTP or
// decoding errors.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// ErrNotFound reports that the catalog has no recipe for the requested id.
var ErrNotFound = errors.New("catalog: recipe not found")

// UnavailableError reports that the catalog could not be used: network
// failure, timeout, a non-2xx response other than not-found, or a payload
// missing required fields.
type UnavailableError struct {
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog unavailable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("catalog unavailable: %s", e.Reason)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable checks if an error is an UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

type Config struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	SearchResults  int    `toml:"search_results"`
}

// RecipeInfo is the validated shape of a catalog detail record.
type RecipeInfo struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Image          string `json:"image"`
	SourceURL      string `json:"sourceUrl"`
	Servings       int    `json:"servings"`
	ReadyInMinutes int    `json:"readyInMinutes"`
}

// SimilarRecipe is the reduced shape the catalog returns for similar-recipe
// lookups; these records carry no image.
type SimilarRecipe struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	SourceURL      string `json:"sourceUrl"`
	Servings       int    `json:"servings"`
	ReadyInMinutes int    `json:"readyInMinutes"`
}

// SearchParams mirrors the catalog's complexSearch filters. Zero values are
// omitted from the query.
type SearchParams struct {
	Query              string
	IncludeIngredients string
	ExcludeIngredients string
	MaxReadyTime       int
	Diet               string
	Intolerances       []string
	Number             int
}

// SearchResult is returned verbatim from the catalog; ranking and pagination
// are the catalog's business.
type SearchResult struct {
	Results      []RecipeInfo `json:"results"`
	Offset       int          `json:"offset"`
	Number       int          `json:"number"`
	TotalResults int          `json:"totalResults"`
}

type Client struct {
	baseURL       string
	apiKey        string
	searchResults int
	httpClient    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	searchResults := cfg.SearchResults
	if searchResults <= 0 {
		searchResults = 6
	}
	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		searchResults: searchResults,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetRecipe fetches the detail record for a recipe id. Returns ErrNotFound
// when the catalog reports the id does not exist, an UnavailableError for
// every other failure mode including a payload missing its title.
func (c *Client) GetRecipe(ctx context.Context, id int64) (*RecipeInfo, error) {
	endpoint := fmt.Sprintf("%s/recipes/%d/information?apiKey=%s", c.baseURL, id, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UnavailableError{Reason: "failed to build detail request", Err: err}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Catalog detail request failed",
			slog.String("type", "error"),
			slog.Int64("recipe_id", id),
			slog.Duration("took", time.Since(start)),
			slog.Any("error", err))
		return nil, &UnavailableError{Reason: "detail request failed", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &UnavailableError{Reason: fmt.Sprintf("detail request returned status %d", resp.StatusCode)}
	}

	var info RecipeInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, &UnavailableError{Reason: "malformed detail payload", Err: err}
	}
	if err := info.validate(id); err != nil {
		return nil, &UnavailableError{Reason: "malformed detail payload", Err: err}
	}

	slog.Debug("Catalog detail fetched",
		slog.Int64("recipe_id", id),
		slog.String("title", info.Title),
		slog.Duration("took", time.Since(start)))

	return &info, nil
}

// validate enforces the minimum shape the application relies on. The catalog
// is duck-typed JSON; a record without a title is unusable and treated the
// same as an outage rather than silently cached.
func (info *RecipeInfo) validate(requestedID int64) error {
	if info.ID == 0 {
		info.ID = requestedID
	}
	if info.ID != requestedID {
		return fmt.Errorf("payload id %d does not match requested id %d", info.ID, requestedID)
	}
	if info.Title == "" {
		return errors.New("payload missing title")
	}
	return nil
}

// Search proxies the catalog's complexSearch endpoint.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("query", params.Query)
	number := params.Number
	if number <= 0 {
		number = c.searchResults
	}
	q.Set("number", strconv.Itoa(number))
	if params.IncludeIngredients != "" {
		q.Set("includeIngredients", params.IncludeIngredients)
	}
	if params.ExcludeIngredients != "" {
		q.Set("excludeIngredients", params.ExcludeIngredients)
	}
	if params.MaxReadyTime > 0 {
		q.Set("maxReadyTime", strconv.Itoa(params.MaxReadyTime))
	}
	if params.Diet != "" {
		q.Set("diet", params.Diet)
	}
	if len(params.Intolerances) > 0 {
		q.Set("intolerances", strings.Join(params.Intolerances, ","))
	}

	endpoint := c.baseURL + "/recipes/complexSearch?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UnavailableError{Reason: "failed to build search request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnavailableError{Reason: "search request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UnavailableError{Reason: fmt.Sprintf("search request returned status %d", resp.StatusCode)}
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &UnavailableError{Reason: "malformed search payload", Err: err}
	}
	return &result, nil
}

// Random fetches a batch of random recipes for browsing. number <= 0 falls
// back to the configured search result count.
func (c *Client) Random(ctx context.Context, number int) ([]RecipeInfo, error) {
	if number <= 0 {
		number = c.searchResults
	}

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("number", strconv.Itoa(number))

	endpoint := c.baseURL + "/recipes/random?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UnavailableError{Reason: "failed to build random request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnavailableError{Reason: "random request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UnavailableError{Reason: fmt.Sprintf("random request returned status %d", resp.StatusCode)}
	}

	// The random endpoint wraps its results differently from search.
	var payload struct {
		Recipes []RecipeInfo `json:"recipes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &UnavailableError{Reason: "malformed random payload", Err: err}
	}
	return payload.Recipes, nil
}

// Similar fetches recipes the catalog considers similar to the given id.
// Returns ErrNotFound when the catalog does not know the id.
func (c *Client) Similar(ctx context.Context, id int64, number int) ([]SimilarRecipe, error) {
	if number <= 0 {
		number = 3
	}

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("number", strconv.Itoa(number))

	endpoint := fmt.Sprintf("%s/recipes/%d/similar?%s", c.baseURL, id, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UnavailableError{Reason: "failed to build similar request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnavailableError{Reason: "similar request failed", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &UnavailableError{Reason: fmt.Sprintf("similar request returned status %d", resp.StatusCode)}
	}

	var similar []SimilarRecipe
	if err := json.NewDecoder(resp.Body).Decode(&similar); err != nil {
		return nil, &UnavailableError{Reason: "malformed similar payload", Err: err}
	}
	return similar, nil
}
