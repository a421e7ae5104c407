// internal/services/matching/university-recommendations/models.go
package universityrecommendations

import (
	"net/url"
	"strconv"
	"strings"

	"advisor-services/internal/store/universities"
)

// Input holds the parsed query. Nil bounds impose no constraint.
type Input struct {
	GPA               *float64
	Budget            *float64
	CountryPreference string
}

type Output struct {
	Recommendations []universities.University `json:"recommendations"`
	Summary         string                    `json:"summary,omitempty"`
}

// ParseInput reads GPA, budget and countryPreference. Malformed numbers are
// dropped, so they impose no constraint.
func ParseInput(q url.Values) *Input {
	in := &Input{CountryPreference: strings.TrimSpace(q.Get("countryPreference"))}

	if raw, ok := lookup(q, "GPA"); ok {
		if gpa, err := strconv.ParseFloat(raw, 64); err == nil {
			in.GPA = &gpa
		}
	}
	if raw, ok := lookup(q, "budget"); ok {
		if budget, err := strconv.ParseFloat(raw, 64); err == nil {
			in.Budget = &budget
		}
	}
	return in
}

func lookup(q url.Values, key string) (string, bool) {
	raw := strings.TrimSpace(q.Get(key))
	return raw, raw != ""
}
