// internal/services/chatbot/student-chat/handler.go
package studentchat

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

const ServiceName = "student-chat"

// Handler answers free-text questions about the student dataset.
type Handler struct {
	students *dataset.StudentSet
	table    *resolver.Table[dataset.Student]
	logger   logger.Logger
	errors   *commonerrors.ErrorHandler
}

func NewHandler(students *dataset.StudentSet, log logger.Logger) *Handler {
	scoped := log.With(map[string]interface{}{"service": ServiceName})
	return &Handler{
		students: students,
		table:    NewTable(),
		logger:   scoped,
		errors:   commonerrors.NewErrorHandler(scoped),
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

// Execute resolves one query. It never fails; unmatched queries get the
// fallback reply.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	res := h.table.Resolve(input.UserQuery, h.students.All())

	metrics.ObserveQuery(ServiceName, string(res.Intent), res.Intent == resolver.IntentFallback)
	h.logger.Debug("query resolved", map[string]interface{}{
		"intent": string(res.Intent),
	})

	return &Output{Reply: res.Reply}, nil
}
