// internal/store/universities/memory.go
package universities

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// MemoryStore serves listings from a JSON seed file held in memory.
type MemoryStore struct {
	listings []University
}

func NewMemoryStore(listings []University) *MemoryStore {
	return &MemoryStore{listings: listings}
}

// LoadMemoryStore reads a JSON array of listings.
func LoadMemoryStore(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read university seed %s: %w", path, err)
	}
	var listings []University
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("decode university seed %s: %w", path, err)
	}
	return NewMemoryStore(listings), nil
}

func (s *MemoryStore) FindByName(_ context.Context, name string) (*University, error) {
	for _, u := range s.listings {
		if strings.EqualFold(u.Name, name) {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (s *MemoryStore) Search(_ context.Context, filter Filter) ([]University, error) {
	out := make([]University, 0)
	for _, u := range s.listings {
		if !filter.Matches(u) {
			continue
		}
		out = append(out, u)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
