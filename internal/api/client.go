// Package api implements the REST persistence collaborator. Records cross
// this boundary loosely typed; the normalization layer owns the conversion
// into canonical shapes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Resource binds the client to one entity collection, e.g. /lunches.
// It satisfies the store.Remote interface.
type Resource struct {
	c        *Client
	entity   string
	singular string
}

func (c *Client) Lunches() *Resource  { return &Resource{c: c, entity: "lunches", singular: "lunch"} }
func (c *Client) Orders() *Resource   { return &Resource{c: c, entity: "orders", singular: "order"} }
func (c *Client) Expenses() *Resource { return &Resource{c: c, entity: "expenses", singular: "expense"} }

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			return errors.New(payload.Error)
		}
		return fmt.Errorf("HTTP error: status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (r *Resource) List(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	if err := r.c.do(ctx, http.MethodGet, "/"+r.entity, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create POSTs a payload without an id; the server assigns one and returns
// the confirmed record under the entity's singular key.
func (r *Resource) Create(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := r.c.do(ctx, http.MethodPost, "/"+r.entity, payload, &out); err != nil {
		return nil, err
	}
	rec, _ := out[r.singular].(map[string]any)
	if rec == nil {
		return nil, fmt.Errorf("malformed create response: missing %q record", r.singular)
	}
	return rec, nil
}

// Update PUTs a partial-or-full payload and returns the updated record.
func (r *Resource) Update(ctx context.Context, id string, payload map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := r.c.do(ctx, http.MethodPut, "/"+r.entity+"/"+id, payload, &out); err != nil {
		return nil, err
	}
	rec, _ := out["updated"].(map[string]any)
	if rec == nil {
		return nil, errors.New("malformed update response: missing updated record")
	}
	return rec, nil
}

func (r *Resource) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/"+r.entity+"/"+id, nil, nil)
}
