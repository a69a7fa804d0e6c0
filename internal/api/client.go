package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// RecipeFilter scopes a catalog page request. An empty Categories slice and
// the ALL band mean "no filtering".
type RecipeFilter struct {
	Categories []Category
	Calories   CaloriesBand
}

// Equal reports whether two filters select the same recipe set.
func (f RecipeFilter) Equal(other RecipeFilter) bool {
	if f.band() != other.band() {
		return false
	}
	if len(f.Categories) != len(other.Categories) {
		return false
	}
	for i, c := range f.Categories {
		if other.Categories[i] != c {
			return false
		}
	}
	return true
}

func (f RecipeFilter) band() CaloriesBand {
	if f.Calories == "" {
		return CaloriesAll
	}
	return f.Calories
}

// Client is the contract the state engines consume. The server behind it is
// an opaque external service.
type Client interface {
	ListRecipes(ctx context.Context, page int, filter RecipeFilter) ([]RecipeSummary, error)
	GetRecipe(ctx context.Context, id int64) (*Recipe, error)
	GenerateGroceryList(ctx context.Context, recipeIDs []int64) ([]GroceryItem, error)
	GetMenu(ctx context.Context, date string) (*Menu, error)
	CreateMenu(ctx context.Context, payload MenuPayload) (*Menu, error)
	UpdateMenu(ctx context.Context, id int64, payload MenuPayload) (*Menu, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

// Observer receives one record per completed request attempt. A zero status
// code means the request never reached the server.
type Observer interface {
	Observe(op string, statusCode int, latency time.Duration, failed bool)
}

// httpClient is the concrete HTTP implementation of Client.
type httpClient struct {
	baseURL  string
	token    string
	client   *http.Client
	observer Observer
}

// Option configures the client.
type Option func(*httpClient)

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *httpClient) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.client = hc
	}
}

// WithObserver records request latency and outcome for every call.
func WithObserver(o Observer) Option {
	return func(c *httpClient) {
		c.observer = o
	}
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListRecipes fetches one catalog page. An empty result signals end of data.
func (c *httpClient) ListRecipes(ctx context.Context, page int, filter RecipeFilter) ([]RecipeSummary, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	for _, cat := range filter.Categories {
		q.Add("categories", string(cat))
	}
	if band := filter.band(); band != CaloriesAll {
		q.Set("calories", string(band))
	}

	var recipes []RecipeSummary
	if err := c.do(ctx, "list recipes", http.MethodGet, "/recipes?"+q.Encode(), nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe hydrates a summary into the full recipe, ingredients and
// description included.
func (c *httpClient) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	var rec Recipe
	if err := c.do(ctx, "get recipe", http.MethodGet, fmt.Sprintf("/recipes/%d", id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// groceryListResponse matches the server envelope for generated lists.
type groceryListResponse struct {
	Items []GroceryItem `json:"items"`
}

// GenerateGroceryList asks the server to aggregate ingredients for the given
// recipes. The client performs no aggregation of its own.
func (c *httpClient) GenerateGroceryList(ctx context.Context, recipeIDs []int64) ([]GroceryItem, error) {
	var resp groceryListResponse
	if err := c.do(ctx, "generate grocery list", http.MethodPost, "/recipes/generate-grocery-list", recipeIDs, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetMenu fetches the menu for a plain calendar date (2006-01-02). A missing
// menu surfaces as ErrNotFound; callers treat that as "no plan yet".
func (c *httpClient) GetMenu(ctx context.Context, date string) (*Menu, error) {
	var menu Menu
	if err := c.do(ctx, "get menu", http.MethodGet, "/menus?date="+url.QueryEscape(date), nil, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// CreateMenu persists a menu for the first time and returns it with the
// server-assigned identifier.
func (c *httpClient) CreateMenu(ctx context.Context, payload MenuPayload) (*Menu, error) {
	var menu Menu
	if err := c.do(ctx, "create menu", http.MethodPost, "/menus", payload, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// UpdateMenu rewrites the full four-slot payload of an identified menu.
func (c *httpClient) UpdateMenu(ctx context.Context, id int64, payload MenuPayload) (*Menu, error) {
	var menu Menu
	if err := c.do(ctx, "update menu", http.MethodPut, fmt.Sprintf("/menus/%d", id), payload, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// ListProducts fetches the full product catalog used as the autocomplete
// source; fetched once per edit session.
func (c *httpClient) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, "list products", http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// do executes one request and decodes the response into out. Non-2xx statuses
// are mapped onto the failure taxonomy.
func (c *httpClient) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request body: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		if expired, _ := TokenExpired(c.token, time.Now()); expired {
			log.Printf("Warning: bearer token looks expired; request %q will likely be rejected", op)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(op, 0, start, true)
		return &RequestError{Op: op, Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(op, resp.StatusCode, start, true)
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Err: classifyStatus(resp.StatusCode)}
	}
	c.observe(op, resp.StatusCode, start, false)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

func (c *httpClient) observe(op string, status int, start time.Time, failed bool) {
	if c.observer == nil {
		return
	}
	c.observer.Observe(op, status, time.Since(start), failed)
}
