package mealdb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/aguxez/mealfinder/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to TheMealDB. It is safe for concurrent use.
type Client struct {
	mu      sync.RWMutex
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a request timeout on a copy of the current http.Client.
// Zero keeps the client as it is.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetBaseURL swaps the API root. Requests already in flight keep the old one.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = baseURL
}

func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

type mealsResponse struct {
	Meals []*models.Meal `json:"meals"`
}

// Lookup returns a random meal for an empty term, otherwise the first meal
// whose name matches term. A nil meal with a nil error means nothing matched.
func (c *Client) Lookup(ctx context.Context, term string) (*models.Meal, error) {
	u := c.endpoint(term)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var data mealsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}
	if len(data.Meals) == 0 {
		return nil, nil
	}
	return data.Meals[0], nil
}

// FetchMeal is Lookup with failures logged and folded into a nil result.
func (c *Client) FetchMeal(ctx context.Context, term string) *models.Meal {
	meal, err := c.Lookup(ctx, term)
	if err != nil {
		c.log.Error("fetching meal failed", zap.String("term", term), zap.Error(err))
		return nil
	}
	if meal == nil {
		c.log.Debug("no meal found", zap.String("term", term))
	}
	return meal
}

func (c *Client) endpoint(term string) string {
	base := c.BaseURL()
	if term == "" {
		return base + "random.php"
	}
	return base + "search.php?" + url.Values{"s": {term}}.Encode()
}
