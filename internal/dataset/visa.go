// internal/dataset/visa.go
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
)

// VisaRequirement describes the student visa process for one country.
type VisaRequirement struct {
	Country           string   `json:"-"`
	VisaType          string   `json:"visaType"`
	Steps             []string `json:"steps"`
	RequiredDocuments []string `json:"requiredDocuments"`
}

// VisaCatalog holds visa requirements in the order the countries appear in
// the source document. Country matching depends on that order.
type VisaCatalog struct {
	entries []VisaRequirement
}

func NewVisaCatalog(entries []VisaRequirement) *VisaCatalog {
	return &VisaCatalog{entries: entries}
}

// Entries returns every country in document order.
func (c *VisaCatalog) Entries() []VisaRequirement {
	if c == nil {
		return nil
	}
	return c.entries
}

// Countries returns the country keys in document order.
func (c *VisaCatalog) Countries() []string {
	out := make([]string, 0, c.Len())
	for _, e := range c.Entries() {
		out = append(out, e.Country)
	}
	return out
}

func (c *VisaCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// DecodeVisaCatalog reads a JSON object keyed by country name. Encoding/json
// maps do not keep key order, so the object is walked token by token.
func DecodeVisaCatalog(r io.Reader) (*VisaCatalog, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read opening token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object keyed by country, got %v", tok)
	}

	var entries []VisaRequirement
	seen := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read country key: %w", err)
		}
		country, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", keyTok)
		}

		var req VisaRequirement
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("decode %q: %w", country, err)
		}
		req.Country = country

		// A repeated key replaces the earlier value in place.
		if i, dup := seen[country]; dup {
			entries[i] = req
			continue
		}
		seen[country] = len(entries)
		entries = append(entries, req)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read closing token: %w", err)
	}
	return NewVisaCatalog(entries), nil
}
