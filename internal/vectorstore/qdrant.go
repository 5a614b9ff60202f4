// Package vectorstore interfaces with the Qdrant REST API.
package vectorstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// QdrantClient talks to a single Qdrant collection over REST.
type QdrantClient struct {
	baseURL    string
	collection string
	dimension  int
	httpClient *http.Client
}

func NewQdrantClient(baseURL, collection string, dimension int) *QdrantClient {
	return &QdrantClient{
		baseURL:    baseURL,
		collection: collection,
		dimension:  dimension,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Point represents a vector point with its payload.
type Point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload,omitempty"`
}

// ScoredPoint is a single similarity-search hit.
type ScoredPoint struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload,omitempty"`
}

// ScrollOffset is the opaque pagination cursor returned by Scroll. A nil
// offset starts from the beginning; a nil next offset means exhaustion.
type ScrollOffset = json.RawMessage

// HealthCheck verifies Qdrant connectivity.
func (c *QdrantClient) HealthCheck() error {
	resp, err := c.httpClient.Get(c.baseURL + "/healthz")
	if err != nil {
		return fmt.Errorf("qdrant health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("qdrant health check: status %d", resp.StatusCode)
	}
	return nil
}

// EnsureCollection creates the collection if it doesn't exist.
func (c *QdrantClient) EnsureCollection() error {
	resp, err := c.httpClient.Get(c.baseURL + "/collections/" + c.collection)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     c.dimension,
			"distance": "Cosine",
		},
	}
	return c.put("/collections/"+c.collection, body)
}

// Upsert inserts or updates vector points.
func (c *QdrantClient) Upsert(points []Point) error {
	body := map[string]any{
		"points": points,
	}
	return c.put("/collections/"+c.collection+"/points", body)
}

// Search finds the nearest vectors matching the filter.
func (c *QdrantClient) Search(vector []float32, limit int, filter Filter) ([]ScoredPoint, error) {
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
		"filter":       filter.encode(),
	}

	respBody, err := c.post("/collections/"+c.collection+"/points/search", body)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Result []ScoredPoint `json:"result"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return resp.Result, nil
}

// Scroll returns one unordered page of points matching the filter, plus the
// cursor for the next page (nil when the corpus is exhausted).
func (c *QdrantClient) Scroll(filter Filter, limit int, offset ScrollOffset) ([]ScoredPoint, ScrollOffset, error) {
	body := map[string]any{
		"filter":       filter.encode(),
		"limit":        limit,
		"with_payload": true,
	}
	if offset != nil {
		body["offset"] = offset
	}

	respBody, err := c.post("/collections/"+c.collection+"/points/scroll", body)
	if err != nil {
		return nil, nil, err
	}

	var resp struct {
		Result struct {
			Points         []ScoredPoint   `json:"points"`
			NextPageOffset json.RawMessage `json:"next_page_offset"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, nil, fmt.Errorf("decode scroll response: %w", err)
	}

	next := resp.Result.NextPageOffset
	if string(next) == "null" {
		next = nil
	}
	return resp.Result.Points, next, nil
}

// Count returns the number of points matching the filter.
func (c *QdrantClient) Count(filter Filter) (int, error) {
	body := map[string]any{
		"filter": filter.encode(),
	}

	respBody, err := c.post("/collections/"+c.collection+"/points/count", body)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return resp.Result.Count, nil
}

func (c *QdrantClient) put(path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant PUT %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant PUT %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	return nil
}

func (c *QdrantClient) post(path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("qdrant POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("qdrant POST %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
