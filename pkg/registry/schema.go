// pkg/registry/schema.go
package registry

// Catalog lists every HTTP endpoint the advisor server can expose.
type Catalog struct {
	Version   string     `json:"version"`
	Endpoints []Endpoint `json:"endpoints"`
}

// Endpoint describes one route. Service is the key used for the
// services.<name>.enabled switch; several endpoints may share it.
type Endpoint struct {
	ID          string   `json:"id"`
	Service     string   `json:"service"`
	Category    string   `json:"category"`
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Requires    []string `json:"requires,omitempty"`
	ErrorCodes  []string `json:"errorCodes"`
}

// Pattern returns the ServeMux pattern, e.g. "POST /chat".
func (e Endpoint) Pattern() string {
	return e.Method + " " + e.Path
}
