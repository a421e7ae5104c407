// internal/services/visa/visa-guidance/handler.go
package visaguidance

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

const ServiceName = "visa-guidance"

// Handler answers visa process questions from the country catalog.
type Handler struct {
	catalog   *dataset.VisaCatalog
	country   *resolver.Table[dataset.VisaRequirement]
	noCountry *resolver.Table[dataset.VisaRequirement]
	logger    logger.Logger
	errors    *commonerrors.ErrorHandler
}

func NewHandler(catalog *dataset.VisaCatalog, log logger.Logger) *Handler {
	scoped := log.With(map[string]interface{}{"service": ServiceName})
	return &Handler{
		catalog:   catalog,
		country:   newCountryTable(),
		noCountry: newNoCountryTable(catalog.Countries()),
		logger:    scoped,
		errors:    commonerrors.NewErrorHandler(scoped),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := commonhttp.ReadBody(w, r)
	if err != nil {
		h.errors.HandleRequestError(w, r, commonerrors.NewRequestBodyError(err))
		return
	}

	var input Input
	if err := commonhttp.DecodeLenient(body, &input); err != nil {
		h.errors.HandleRequestError(w, r, commonerrors.NewInvalidRequestError(err))
		return
	}

	output, err := h.Execute(r.Context(), &input)
	if err != nil {
		h.errors.HandleRequestError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, output)
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	res := h.resolve(input.UserQuery)

	fallback := res.Intent == resolver.IntentFallback || res.Intent == IntentEmpty
	metrics.ObserveQuery(ServiceName, string(res.Intent), fallback)
	h.logger.Debug("query resolved", map[string]interface{}{
		"intent": string(res.Intent),
	})

	return &Output{Reply: res.Reply}, nil
}

func (h *Handler) resolve(query string) resolver.Result {
	q := resolver.Normalize(query)
	if q == "" {
		return resolver.Result{Intent: IntentEmpty, Reply: EmptyQueryReply}
	}

	if entry, ok := MatchCountry(q, h.catalog.Entries()); ok {
		return h.country.Resolve(q, []dataset.VisaRequirement{entry})
	}
	return h.noCountry.Resolve(q, h.catalog.Entries())
}
