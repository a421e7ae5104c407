// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Backend names an endpoint can require.
const (
	RequiresUniversities = "universities"
	RequiresSessions     = "sessions"
	RequiresGeneration   = "generation"
)

// Default is the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Version: "1.0.0",
		Endpoints: []Endpoint{
			{
				ID: "chat", Service: "student-chat", Category: "chatbot",
				Method: http.MethodPost, Path: "/chat",
				Description: "Answer questions about the student records",
				ErrorCodes:  []string{"INVALID_REQUEST"},
			},
			{
				ID: "visa-chat", Service: "visa-guidance", Category: "visa",
				Method: http.MethodPost, Path: "/visa/chat",
				Description: "Answer student visa questions by country",
				ErrorCodes:  []string{"INVALID_REQUEST"},
			},
			{
				ID: "recommendations", Service: "recommendations", Category: "matching",
				Method: http.MethodGet, Path: "/recommendations",
				Description: "Filter student records by GPA, major and location",
			},
			{
				ID: "university-recommendations", Service: "university-recommendations", Category: "matching",
				Method: http.MethodGet, Path: "/university-recommendations",
				Description: "Search university listings with an optional generated summary",
				Requires:    []string{RequiresUniversities},
				ErrorCodes:  []string{"DOCUMENT_STORE_FAILED", "GENERATION_FAILED", "GENERATION_TIMEOUT"},
			},
			{
				ID: "generate-sop", Service: "generate-sop", Category: "documents",
				Method: http.MethodPost, Path: "/generate-sop",
				Description: "Draft a statement of purpose from a student record",
				ErrorCodes:  []string{"VALIDATION_FAILED", "STUDENT_NOT_FOUND"},
			},
			{
				ID: "start-sop-conversation", Service: "sop-conversation", Category: "documents",
				Method: http.MethodPost, Path: "/start-sop-conversation",
				Description: "Open a drafting session for a university",
				Requires:    []string{RequiresUniversities, RequiresSessions, RequiresGeneration},
				ErrorCodes:  []string{"VALIDATION_FAILED", "UNIVERSITY_NOT_FOUND", "DOCUMENT_STORE_FAILED", "SESSION_STORE_FAILED"},
			},
			{
				ID: "continue-sop-conversation", Service: "sop-conversation", Category: "documents",
				Method: http.MethodPost, Path: "/continue-sop-conversation",
				Description: "Record an answer and ask the next question",
				Requires:    []string{RequiresUniversities, RequiresSessions, RequiresGeneration},
				ErrorCodes:  []string{"VALIDATION_FAILED", "SESSION_NOT_FOUND", "SESSION_STORE_FAILED", "GENERATION_FAILED", "GENERATION_TIMEOUT"},
			},
			{
				ID: "get-sop-draft", Service: "sop-conversation", Category: "documents",
				Method: http.MethodGet, Path: "/get-sop-draft",
				Description: "Generate the full statement from a session",
				Requires:    []string{RequiresUniversities, RequiresSessions, RequiresGeneration},
				ErrorCodes:  []string{"SESSION_NOT_FOUND", "SESSION_STORE_FAILED", "GENERATION_FAILED", "GENERATION_TIMEOUT"},
			},
		},
	}
}

// Load reads a catalog from a JSON file and validates it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Find returns the endpoint with the given id.
func (c *Catalog) Find(id string) (Endpoint, bool) {
	for _, e := range c.Endpoints {
		if e.ID == id {
			return e, true
		}
	}
	return Endpoint{}, false
}

// Validate checks ids and routes are unique and well formed.
func (c *Catalog) Validate() error {
	ids := make(map[string]bool)
	patterns := make(map[string]bool)
	for _, e := range c.Endpoints {
		if e.ID == "" || e.Service == "" {
			return fmt.Errorf("endpoint %q: id and service are required", e.Path)
		}
		if ids[e.ID] {
			return fmt.Errorf("duplicate endpoint id %q", e.ID)
		}
		ids[e.ID] = true

		if e.Method != http.MethodGet && e.Method != http.MethodPost {
			return fmt.Errorf("endpoint %q: unsupported method %q", e.ID, e.Method)
		}
		if !strings.HasPrefix(e.Path, "/") {
			return fmt.Errorf("endpoint %q: path must start with /", e.ID)
		}
		if patterns[e.Pattern()] {
			return fmt.Errorf("duplicate route %q", e.Pattern())
		}
		patterns[e.Pattern()] = true
	}
	return nil
}
