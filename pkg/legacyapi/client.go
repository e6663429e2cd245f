// Package legacyapi is a minimal HTTP client for the legacy storefront
// API, the remote collection source for catalog imports. The legacy
// service predates this one and its responses are inconsistent; the
// client tolerates the known shape variants and normalizes records at
// the boundary.
package legacyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNoCredential is returned when an admin endpoint is called without
// a bearer token. Detected locally; no request is sent.
var ErrNoCredential = errors.New("legacy API credential missing")

// Client is a minimal HTTP client for the legacy storefront API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	debug      bool
}

// NewClient constructs a legacy API client with sane defaults. token is
// the opaque bearer credential for admin endpoints and may be empty,
// which restricts the client to public endpoints.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
		debug:      os.Getenv("ENV") == "development",
	}
}

// ProductsPage is one page of legacy products.
type ProductsPage struct {
	Products   []Product
	Pagination PaginationBlock
}

// GetProducts retrieves one page of products from the admin endpoint.
// Requires the bearer credential.
func (c *Client) GetProducts(ctx context.Context, page, limit int) (*ProductsPage, error) {
	if c.token == "" {
		return nil, ErrNoCredential
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	var env Envelope
	path := fmt.Sprintf("/products/admin?page=%d&limit=%d", page, limit)
	if err := c.doRequest(ctx, path, true, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("legacy API rejected products request: %s", env.Message)
	}

	var products []Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	result := &ProductsPage{Products: products}
	if env.Pagination != nil {
		result.Pagination = *env.Pagination
	} else {
		result.Pagination = PaginationBlock{Current: page, Pages: 1, Total: len(products), Limit: limit}
	}
	return result, nil
}

// GetCategories retrieves categories. The admin endpoint is preferred;
// on a missing credential or any failure it falls back to the public
// endpoint, mirroring the dashboard's historical behavior.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	if c.token != "" {
		cats, err := c.getCategories(ctx, "/categories/admin", true)
		if err == nil {
			return cats, nil
		}
		log.Warn().Err(err).Msg("legacy admin categories failed, falling back to public endpoint")
	}
	return c.getCategories(ctx, "/categories", false)
}

func (c *Client) getCategories(ctx context.Context, path string, auth bool) ([]Category, error) {
	var env Envelope
	if err := c.doRequest(ctx, path, auth, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("legacy API rejected categories request: %s", env.Message)
	}
	var cats []Category
	if err := json.Unmarshal(env.Data, &cats); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return cats, nil
}

// GetOrders retrieves all orders. The legacy endpoint answers in one of
// three shapes depending on its version: a bare array, an envelope with
// a data array, or a single object. All three are tolerated.
func (c *Client) GetOrders(ctx context.Context) ([]Order, error) {
	raw, err := c.doRaw(ctx, "/orders", c.token != "")
	if err != nil {
		return nil, err
	}
	return decodeOrders(raw)
}

// decodeOrders absorbs the legacy order response shape variants.
func decodeOrders(raw []byte) ([]Order, error) {
	var orders []Order
	if err := json.Unmarshal(raw, &orders); err == nil {
		return orders, nil
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &orders); err == nil {
			return orders, nil
		}
		var one Order
		if err := json.Unmarshal(env.Data, &one); err == nil && one.Identifier() != "" {
			return []Order{one}, nil
		}
	}

	var one Order
	if err := json.Unmarshal(raw, &one); err == nil && one.Identifier() != "" {
		return []Order{one}, nil
	}
	return nil, errors.New("unrecognized legacy orders response shape")
}

// doRequest performs a GET against the legacy API and decodes the JSON
// response into result.
func (c *Client) doRequest(ctx context.Context, path string, auth bool, result any) error {
	raw, err := c.doRaw(ctx, path, auth)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, path string, auth bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("path", path).
			Int("status_code", resp.StatusCode).
			RawJSON("response", body).
			Msg("[LEGACY] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("legacy API returned status %d", resp.StatusCode)
	}
	return body, nil
}
