// internal/services/matching/recommendations/handler.go
package recommendations

import (
	"context"
	"net/http"

	commonerrors "advisor-services/internal/common/errors"
	commonhttp "advisor-services/internal/common/http"
	"advisor-services/internal/common/logger"
	"advisor-services/internal/common/metrics"
	"advisor-services/internal/dataset"
	"advisor-services/internal/resolver"
)

const ServiceName = "recommendations"

// Handler filters the student dataset by GPA threshold and exact field values.
type Handler struct {
	config   *Config
	students *dataset.StudentSet
	logger   logger.Logger
	errors   *commonerrors.ErrorHandler
}

func NewHandler(config *Config, students *dataset.StudentSet, log logger.Logger) *Handler {
	scoped := log.With(map[string]interface{}{"service": ServiceName})
	return &Handler{
		config:   config,
		students: students,
		logger:   scoped,
		errors:   commonerrors.NewErrorHandler(scoped),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	output, err := h.Execute(r.Context(), ParseInput(r.URL.Query()))
	if err != nil {
		h.errors.HandleRequestError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, output)
}

// Execute keeps records satisfying every provided constraint, in dataset
// order, truncated to MaxResults.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	matched := resolver.Filter(h.students.All(), func(s dataset.Student) bool {
		return Matches(input, s)
	})
	results := resolver.Take(matched, h.config.MaxResults)

	metrics.ObserveQuery(ServiceName, "filter", len(results) == 0)
	h.logger.Debug("recommendations computed", map[string]interface{}{
		"minGpa":   float64(input.MinGPA),
		"major":    input.Major,
		"location": input.Location,
		"matched":  len(matched),
		"returned": len(results),
	})

	return &Output{Recommendations: results}, nil
}

// Matches reports whether s satisfies the threshold and exact-match filters.
func Matches(input *Input, s dataset.Student) bool {
	if s.GPA < input.MinGPA {
		return false
	}
	if input.Major != "" && s.Major != input.Major {
		return false
	}
	if input.Location != "" && s.LocationPreference != input.Location {
		return false
	}
	return true
}
