// Package client talks to the storefront API. Endpoint shapes are an
// opaque contract owned upstream: JSON bodies, bearer auth, responses
// wrapped in a {"data": ...} envelope, prices in minor currency units.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dosmond/terminal-coffee-range/catalog"
)

// APIError is a structured upstream rejection.
type APIError struct {
	Status  int    `json:"-"`
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (%s, status %d)", e.Message, e.Type, e.Status)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Client is a thin HTTP wrapper. Safe for sequential use from the UI
// thread; checkout issues its requests one at a time.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     zerolog.Logger
}

// New builds a client for the given options.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: opts.BaseURL,
		token:   opts.Token,
		httpc:   &http.Client{Timeout: timeout},
		log:     opts.Logger,
	}
}

// Products fetches the product list, normalized to decimal prices.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var wire []wireProduct
	if err := c.do(ctx, http.MethodGet, "/product", nil, &wire); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(wire))
	for _, wp := range wire {
		p := catalog.Product{
			ID:           wp.ID,
			Name:         wp.Name,
			Description:  wp.Description,
			Subscription: catalog.ParseSubscriptionPolicy(wp.Subscription),
		}
		for _, wv := range wp.Variants {
			p.Variants = append(p.Variants, catalog.Variant{
				ID:    wv.ID,
				Name:  wv.Name,
				Price: catalog.PriceFromMinorUnits(wv.Price),
			})
		}
		products = append(products, p)
	}
	return products, nil
}

// Profile fetches the authenticated user.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Addresses lists saved shipping addresses.
func (c *Client) Addresses(ctx context.Context) ([]Address, error) {
	var out []Address
	if err := c.do(ctx, http.MethodGet, "/address", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAddress saves a new address and returns its id.
func (c *Client) CreateAddress(ctx context.Context, in AddressInput) (string, error) {
	var id string
	if err := c.do(ctx, http.MethodPost, "/address", in, &id); err != nil {
		return "", err
	}
	return id, nil
}

// Cards lists saved payment methods.
func (c *Client) Cards(ctx context.Context) ([]Card, error) {
	var out []Card
	if err := c.do(ctx, http.MethodGet, "/card", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CollectCard returns a browser URL where the user enters card details.
// Card entry happens externally; the refreshed card list is fetched after.
func (c *Client) CollectCard(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/card/collect", struct{}{}, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// CreateOrder submits the one-time order and returns its id.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (string, error) {
	var id string
	if err := c.do(ctx, http.MethodPost, "/order", req, &id); err != nil {
		return "", err
	}
	return id, nil
}

// CreateSubscription submits one subscription and returns its id.
func (c *Client) CreateSubscription(ctx context.Context, req SubscriptionRequest) (string, error) {
	var id string
	if err := c.do(ctx, http.MethodPost, "/subscription", req, &id); err != nil {
		return "", err
	}
	return id, nil
}

// envelope is the {"data": ...} wrapper every endpoint uses.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	reqID := uuid.NewString()
	log := c.log.With().Str("request_id", reqID).Str("method", method).Str("path", path).Logger()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s response: %w", method, path, err)
	}
	log.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		// Error bodies follow the documented taxonomy; keep the raw
		// status when they don't parse.
		_ = json.Unmarshal(raw, apiErr)
		log.Warn().Int("status", resp.StatusCode).Str("code", apiErr.Code).Msg("api rejection")
		return apiErr
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding %s %s envelope: %w", method, path, err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding %s %s data: %w", method, path, err)
	}
	return nil
}
