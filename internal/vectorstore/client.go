// Package vectorstore is a thin REST client for the collection-level
// Qdrant operations this project needs: existence check, delete, create
// with an explicit vector schema, batched point upsert and bulk scroll.
// The langchaingo qdrant store (used for similarity search) covers none
// of these, so they are issued directly.
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const httpTimeout = 30 * time.Second

// DistanceCosine is the similarity space every collection here uses.
const DistanceCosine = "Cosine"

// Client talks to one Qdrant instance over its HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// Point is one vector with its dense integer id and payload.
type Point struct {
	ID      uint64         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// ScrolledPoint is a point read back without its vector.
type ScrolledPoint struct {
	ID      uint64         `json:"id"`
	Payload map[string]any `json:"payload"`
}

func (c *Client) CollectionExists(ctx context.Context, name string) (bool, error) {
	var out struct {
		Result struct {
			Exists bool `json:"exists"`
		} `json:"result"`
	}
	err := c.do(ctx, http.MethodGet, "/collections/"+name+"/exists", nil, &out)
	if err != nil {
		return false, fmt.Errorf("collection exists check: %w", err)
	}
	return out.Result.Exists, nil
}

func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, "/collections/"+name, nil, nil); err != nil {
		return fmt.Errorf("delete collection %q: %w", name, err)
	}
	return nil
}

// CreateCollection creates a collection for vectors of the given
// dimensionality and distance metric.
func (c *Client) CreateCollection(ctx context.Context, name string, size int, distance string) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     size,
			"distance": distance,
		},
	}
	if err := c.do(ctx, http.MethodPut, "/collections/"+name, body, nil); err != nil {
		return fmt.Errorf("create collection %q: %w", name, err)
	}
	return nil
}

// UpsertPoints writes one batch of points, waiting for the operation to
// be applied before returning.
func (c *Client) UpsertPoints(ctx context.Context, name string, points []Point) error {
	body := map[string]any{"points": points}
	if err := c.do(ctx, http.MethodPut, "/collections/"+name+"/points?wait=true", body, nil); err != nil {
		return fmt.Errorf("upsert %d points into %q: %w", len(points), name, err)
	}
	return nil
}

// Scroll reads up to limit points with payloads, vectors omitted.
func (c *Client) Scroll(ctx context.Context, name string, limit int) ([]ScrolledPoint, error) {
	body := map[string]any{
		"limit":        limit,
		"with_payload": true,
		"with_vector":  false,
	}
	var out struct {
		Result struct {
			Points []ScrolledPoint `json:"points"`
		} `json:"result"`
	}
	if err := c.do(ctx, http.MethodPost, "/collections/"+name+"/points/scroll", body, &out); err != nil {
		return nil, fmt.Errorf("scroll %q: %w", name, err)
	}
	return out.Result.Points, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("qdrant returned %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
