package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Client talks to the recycling backend. The zero value is not usable;
// build one with New.
type Client struct {
	base *url.URL
	http *http.Client

	Societies    Resource[Society]
	Trucks       Resource[Truck]
	Destinations Resource[Destination]
	Pickups      Resource[Pickup]
	Sales        Resource[Sale]
	Transactions Resource[Transaction]
}

// New builds a client for the backend at baseURL. httpClient is expected
// to carry the request pipeline transport; nil falls back to the default
// client.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, ErrBaseURLEmpty
	}

	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing api base URL")
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{base: base, http: httpClient}
	c.Societies = Resource[Society]{c: c, path: "/societies"}
	c.Trucks = Resource[Truck]{c: c, path: "/trucks"}
	c.Destinations = Resource[Destination]{c: c, path: "/destinations"}
	c.Pickups = Resource[Pickup]{c: c, path: "/pickups"}
	c.Sales = Resource[Sale]{c: c, path: "/sales"}
	c.Transactions = Resource[Transaction]{c: c, path: "/transactions"}

	return c, nil
}

// ExportTransactions fetches the accounting export in the format the
// backend produces (CSV).
func (c *Client) ExportTransactions(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String()+"/transactions/export", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	return io.ReadAll(resp.Body)
}

// Resource provides CRUD over one collection endpoint.
type Resource[T any] struct {
	c    *Client
	path string
}

func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	return do[[]T](ctx, r.c, http.MethodGet, r.path, nil)
}

func (r Resource[T]) Get(ctx context.Context, id uint) (T, error) {
	return do[T](ctx, r.c, http.MethodGet, r.itemPath(id), nil)
}

func (r Resource[T]) Create(ctx context.Context, item T) (T, error) {
	return do[T](ctx, r.c, http.MethodPost, r.path, item)
}

func (r Resource[T]) Update(ctx context.Context, id uint, item T) (T, error) {
	return do[T](ctx, r.c, http.MethodPut, r.itemPath(id), item)
}

func (r Resource[T]) Delete(ctx context.Context, id uint) error {
	_, err := do[struct{}](ctx, r.c, http.MethodDelete, r.itemPath(id), nil)

	return err
}

func (r Resource[T]) itemPath(id uint) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T

	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return out, errors.Wrap(err, "encoding request body")
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return out, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return out, statusError(resp)
	}

	if resp.StatusCode == http.StatusNoContent {
		return out, nil
	}

	// An empty success body (e.g. on delete) is fine.
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		return out, errors.Wrap(err, "decoding response body")
	}

	return out, nil
}

func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	return &StatusError{Status: resp.StatusCode, Body: string(snippet)}
}
