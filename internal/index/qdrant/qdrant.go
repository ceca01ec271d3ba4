// Package qdrant is a minimal REST client to Qdrant implementing the
// index.Store interface with cosine distance.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"reviewrag/internal/domain"
	"reviewrag/internal/index"
)

// Store is a REST client to a single Qdrant collection. It creates the
// collection if missing.
type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// Config contains connection details for a Qdrant vector store.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// NewStore creates a Qdrant-backed store.
func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Ensure creates the collection with the given vector size if it does
// not exist. Qdrant returns 200 for an existing collection with the
// same schema.
func (s *Store) Ensure(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

// Upsert writes points in one call. Qdrant only accepts integer or UUID
// point IDs, so the stable chunk ID becomes a UUIDv5 of itself and the
// readable form rides along in the payload.
func (s *Store) Upsert(ctx context.Context, points []index.Point) error {
	if len(points) == 0 {
		return nil
	}
	qpoints := make([]map[string]any, len(points))
	for i, p := range points {
		qpoints[i] = map[string]any{
			"id":     PointID(p.ID),
			"vector": p.Vector,
			"payload": map[string]any{
				"chunk_id":           p.ID,
				"text":               p.Text,
				"source_url":         p.Meta.SourceURL,
				"title":              p.Meta.Title,
				"chunk_num":          p.Meta.ChunkNum,
				"original_doc_index": p.Meta.OriginalDocIndex,
			},
		}
	}
	body := map[string]any{"points": qpoints}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

// Count returns the exact number of points in the collection. A missing
// collection counts as zero so that first startup proceeds to embedding.
func (s *Store) Count(ctx context.Context) (int, error) {
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection),
		map[string]any{"exact": true}, &resp)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return 0, nil
		}
		return 0, err
	}
	return resp.Result.Count, nil
}

// Search returns the k nearest points ordered by ascending distance.
// Qdrant reports cosine similarity descending; distance is 1 - score.
func (s *Store) Search(ctx context.Context, vector []float64, k int) ([]domain.Hit, error) {
	if k <= 0 {
		k = 3
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	hits := make([]domain.Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hit := domain.Hit{Distance: 1 - r.Score}
		if v, ok := r.Payload["text"].(string); ok {
			hit.Text = v
		}
		if v, ok := r.Payload["source_url"].(string); ok {
			hit.Meta.SourceURL = v
		}
		if v, ok := r.Payload["title"].(string); ok {
			hit.Meta.Title = v
		}
		if v, ok := r.Payload["chunk_num"].(float64); ok {
			hit.Meta.ChunkNum = int(v)
		}
		if v, ok := r.Payload["original_doc_index"].(float64); ok {
			hit.Meta.OriginalDocIndex = int(v)
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// PointID maps a stable chunk ID onto a deterministic UUID accepted by
// Qdrant.
func PointID(chunkID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(chunkID)).String()
}

type statusError struct {
	method string
	url    string
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant %s %s failed: %s", e.method, e.url, e.status)
}

func (s *Store) putJSON(ctx context.Context, url string, body any) error {
	return s.doJSON(ctx, http.MethodPut, url, body, nil)
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	return s.doJSON(ctx, http.MethodPost, url, body, out)
}

func (s *Store) doJSON(ctx context.Context, method, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &statusError{method: method, url: url, code: resp.StatusCode, status: resp.Status}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
