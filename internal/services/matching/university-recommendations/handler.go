// internal/services/matching/university-recommendations/handler.go
package universityrecommendations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	commonerrors "advisor-services/internal/common/errors"
	"advisor-services/internal/common/genai"
	commonhttp "advisor-services/internal/common/http"
	"advisor-services/internal/common/logger"
	"advisor-services/internal/common/metrics"
	"advisor-services/internal/store/universities"
)

const ServiceName = "university-recommendations"

// Handler filters university listings from the document store and, when a
// generator is configured, adds a ranked summary.
type Handler struct {
	config    *Config
	store     universities.Store
	generator genai.Generator
	logger    logger.Logger
	errors    *commonerrors.ErrorHandler
}

// NewHandler builds the handler. generator may be nil.
func NewHandler(config *Config, store universities.Store, generator genai.Generator, log logger.Logger) *Handler {
	scoped := log.With(map[string]interface{}{"service": ServiceName})
	return &Handler{
		config:    config,
		store:     store,
		generator: generator,
		logger:    scoped,
		errors:    commonerrors.NewErrorHandler(scoped),
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	listings, err := h.store.Search(ctx, universities.Filter{
		GPA:     input.GPA,
		Budget:  input.Budget,
		Country: input.CountryPreference,
		Limit:   h.config.MaxResults,
	})
	if err != nil {
		return nil, commonerrors.NewDocumentStoreFailedError(err)
	}
	if h.config.MaxResults > 0 && len(listings) > h.config.MaxResults {
		listings = listings[:h.config.MaxResults]
	}

	metrics.ObserveQuery(ServiceName, "filter", len(listings) == 0)
	output := &Output{Recommendations: listings}

	if h.generator == nil || len(listings) == 0 {
		return output, nil
	}

	summary, err := h.generator.Generate(ctx, genai.Request{
		Prompt:    buildSummaryPrompt(listings, input),
		MaxTokens: h.config.SummaryMaxTokens,
	})
	metrics.GenerationRequests.WithLabelValues("university_summary", metrics.Outcome(err)).Inc()
	if err != nil {
		h.logger.Error("summary generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		if errors.Is(err, genai.ErrGenerationTimeout) {
			return nil, commonerrors.NewGenerationTimeoutError(err)
		}
		return nil, commonerrors.NewGenerationFailedError(err)
	}
	output.Summary = summary

	return output, nil
}

func buildSummaryPrompt(listings []universities.University, input *Input) string {
	data, _ := json.Marshal(listings)
	return fmt.Sprintf("Given these universities: %s, rank and summarize them for a student with a GPA of %s, "+
		"budget of %s, and preference for %s.",
		data, describe(input.GPA), describe(input.Budget), orAny(input.CountryPreference))
}

func describe(v *float64) string {
	if v == nil {
		return "any"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func orAny(s string) string {
	if s == "" {
		return "any country"
	}
	return s
}
