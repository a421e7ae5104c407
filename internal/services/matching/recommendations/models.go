// internal/services/matching/recommendations/models.go
package recommendations

import (
	"net/url"

	"advisor-services/internal/dataset"
)

// Input is the parsed query string. Empty Major or Location imposes no
// constraint.
type Input struct {
	MinGPA   dataset.GPA
	Major    string
	Location string
}

type Output struct {
	Recommendations []dataset.Student `json:"recommendations"`
}

// ParseInput reads GPA, major and location. A missing or malformed GPA is
// treated as 0.0.
func ParseInput(q url.Values) *Input {
	return &Input{
		MinGPA:   dataset.ParseGPA(q.Get("GPA")),
		Major:    q.Get("major"),
		Location: q.Get("location"),
	}
}
