package index

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"reviewrag/internal/domain"
)

// MemoryStore is a brute-force in-memory Store used in tests and for
// running without a Qdrant instance.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	points    []Point
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Ensure records the vector dimension. Re-ensuring with the same
// dimension is a no-op; the store keeps its points.
func (s *MemoryStore) Ensure(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension != 0 && s.dimension != dimension {
		return errors.New("dimension mismatch")
	}
	s.dimension = dimension
	return nil
}

// Upsert inserts points, replacing any existing point with the same ID.
func (s *MemoryStore) Upsert(_ context.Context, points []Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range points {
		if len(p.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for _, p := range points {
		replaced := false
		for i := range s.points {
			if s.points[i].ID == p.ID {
				s.points[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			s.points = append(s.points, p)
		}
	}
	return nil
}

// Count returns the number of stored points.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points), nil
}

// Search ranks all points by cosine distance to the query vector.
func (s *MemoryStore) Search(_ context.Context, vector []float64, k int) ([]domain.Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if k <= 0 {
		k = 3
	}
	hits := make([]domain.Hit, 0, len(s.points))
	for _, p := range s.points {
		hits = append(hits, domain.Hit{
			Text:     p.Text,
			Meta:     p.Meta,
			Distance: 1 - cosine(vector, p.Vector),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
