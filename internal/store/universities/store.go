// Package universities looks up university listings in a document store.
package universities

import (
	"context"
	"errors"

	"advisor-services/internal/common/metrics"
)

var (
	ErrNotFound    = errors.New("UNIVERSITY_NOT_FOUND")
	ErrStoreFailed = errors.New("DOCUMENT_STORE_FAILED")
)

// University is one listing. Requirements holds the SOP guidance, empty when
// the university publishes none.
type University struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	Country      string  `json:"country"`
	Fees         float64 `json:"fees"`
	MinGPA       float64 `json:"min_gpa"`
	Requirements string  `json:"requirements,omitempty"`
}

// Filter constrains Search. Nil bounds and an empty country impose nothing.
type Filter struct {
	GPA     *float64 // keep listings with min_gpa <= GPA
	Budget  *float64 // keep listings with fees <= Budget
	Country string
	Limit   int
}

// Matches reports whether u satisfies every set constraint.
func (f Filter) Matches(u University) bool {
	if f.GPA != nil && u.MinGPA > *f.GPA {
		return false
	}
	if f.Budget != nil && u.Fees > *f.Budget {
		return false
	}
	if f.Country != "" && u.Country != f.Country {
		return false
	}
	return true
}

// Store is implemented by every backend.
type Store interface {
	// FindByName matches the whole name ignoring case.
	FindByName(ctx context.Context, name string) (*University, error)
	// Search returns matching listings in store order.
	Search(ctx context.Context, filter Filter) ([]University, error)
}

// Instrumented counts store calls by backend and outcome.
type Instrumented struct {
	next    Store
	backend string
}

func NewInstrumented(next Store, backend string) *Instrumented {
	return &Instrumented{next: next, backend: backend}
}

func (s *Instrumented) FindByName(ctx context.Context, name string) (*University, error) {
	u, err := s.next.FindByName(ctx, name)
	outcome := metrics.Outcome(err)
	if errors.Is(err, ErrNotFound) {
		outcome = "not_found"
	}
	metrics.StoreQueries.WithLabelValues(s.backend, outcome).Inc()
	return u, err
}

func (s *Instrumented) Search(ctx context.Context, filter Filter) ([]University, error) {
	out, err := s.next.Search(ctx, filter)
	metrics.StoreQueries.WithLabelValues(s.backend, metrics.Outcome(err)).Inc()
	return out, err
}
