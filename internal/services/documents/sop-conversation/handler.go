// internal/services/documents/sop-conversation/handler.go
package sopconversation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	commonerrors "advisor-services/internal/common/errors"
	"advisor-services/internal/common/genai"
	commonhttp "advisor-services/internal/common/http"
	"advisor-services/internal/common/logger"
	"advisor-services/internal/common/metrics"
	"advisor-services/internal/common/validation"
	"advisor-services/internal/dataset"
	"advisor-services/internal/store/universities"

	"github.com/google/uuid"
)

const ServiceName = "sop-conversation"

const (
	noContinueSessionMessage = "No active SOP drafting session found. Please start a new session."
	noDraftSessionMessage    = "No active SOP session found."
)

var (
	startRequestSchema    = validation.MustCompile("start-sop-conversation", startSchema)
	continueRequestSchema = validation.MustCompile("continue-sop-conversation", continueSchema)
)

// Handler runs multi-turn SOP drafting conversations. Calls for the same
// student are serialized; different students proceed in parallel.
type Handler struct {
	config       *Config
	universities universities.Store
	sessions     SessionStore
	generator    genai.Generator
	locks        *keyedMutex
	now          func() time.Time
	logger       logger.Logger
	errors       *commonerrors.ErrorHandler
}

func NewHandler(config *Config, unis universities.Store, sessions SessionStore, generator genai.Generator, log logger.Logger) *Handler {
	scoped := log.With(map[string]interface{}{"service": ServiceName})
	return &Handler{
		config:       config,
		universities: unis,
		sessions:     sessions,
		generator:    generator,
		locks:        newKeyedMutex(),
		now:          time.Now,
		logger:       scoped,
		errors:       commonerrors.NewErrorHandler(scoped),
	}
}

// ServeStart handles POST /start-sop-conversation.
func (h *Handler) ServeStart(w http.ResponseWriter, r *http.Request) {
	var input StartInput
	if !h.decode(w, r, startRequestSchema, &input) {
		return
	}
	h.respond(w, r, func() (interface{}, error) { return h.Start(r.Context(), &input) })
}

// ServeContinue handles POST /continue-sop-conversation.
func (h *Handler) ServeContinue(w http.ResponseWriter, r *http.Request) {
	var input ContinueInput
	if !h.decode(w, r, continueRequestSchema, &input) {
		return
	}
	h.respond(w, r, func() (interface{}, error) { return h.Continue(r.Context(), &input) })
}

// ServeDraft handles GET /get-sop-draft?student_id=.
func (h *Handler) ServeDraft(w http.ResponseWriter, r *http.Request) {
	input := &DraftInput{StudentID: dataset.StudentID(strings.TrimSpace(r.URL.Query().Get("student_id")))}
	h.respond(w, r, func() (interface{}, error) { return h.Draft(r.Context(), input) })
}

// Start looks the university up, opens a fresh session and returns the
// opening question. An existing session for the student is replaced.
func (h *Handler) Start(ctx context.Context, input *StartInput) (*MessageOutput, error) {
	id := input.StudentID.String()
	unlock := h.locks.Lock(id)
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	uni, err := h.universities.FindByName(ctx, input.UniversityName)
	if err != nil {
		if errors.Is(err, universities.ErrNotFound) {
			return nil, commonerrors.NewUniversityNotFoundError(input.UniversityName)
		}
		return nil, commonerrors.NewDocumentStoreFailedError(err)
	}

	requirements := uni.Requirements
	if strings.TrimSpace(requirements) == "" {
		requirements = DefaultRequirements
	}

	session := &Session{
		StudentID:      id,
		UniversityName: input.UniversityName,
		Requirements:   requirements,
		Turns:          []Turn{h.turn(RoleAssistant, OpeningQuestion)},
		CreatedAt:      h.now(),
	}
	if err := h.sessions.Create(ctx, session); err != nil {
		return nil, commonerrors.NewSessionStoreFailedError(err)
	}

	h.logger.Info("sop session started", map[string]interface{}{
		"studentId":  id,
		"university": input.UniversityName,
	})
	return &MessageOutput{Message: OpeningQuestion}, nil
}

// Continue records the student's answer, asks the generator for the next
// question and records that too. The student turn is kept even when
// generation fails.
func (h *Handler) Continue(ctx context.Context, input *ContinueInput) (*MessageOutput, error) {
	id := input.StudentID.String()
	unlock := h.locks.Lock(id)
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	if err := h.sessions.AppendTurn(ctx, id, h.turn(RoleStudent, input.StudentResponse)); err != nil {
		return nil, h.sessionError(err, noContinueSessionMessage)
	}

	session, err := h.sessions.Get(ctx, id)
	if err != nil {
		return nil, h.sessionError(err, noContinueSessionMessage)
	}

	reply, err := h.generate(ctx, "sop_turn", genai.Request{
		Prompt:      buildTurnPrompt(session.Turns, session.Requirements),
		MaxTokens:   h.config.TurnMaxTokens,
		Temperature: h.config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	if err := h.sessions.AppendTurn(ctx, id, h.turn(RoleAssistant, reply)); err != nil {
		return nil, h.sessionError(err, noContinueSessionMessage)
	}
	return &MessageOutput{Message: reply}, nil
}

// Draft asks the generator for the full statement from the whole
// conversation. The session is left as is.
func (h *Handler) Draft(ctx context.Context, input *DraftInput) (*DraftOutput, error) {
	id := input.StudentID.String()
	unlock := h.locks.Lock(id)
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	session, err := h.sessions.Get(ctx, id)
	if err != nil {
		return nil, h.sessionError(err, noDraftSessionMessage)
	}

	draft, err := h.generate(ctx, "sop_draft", genai.Request{
		Prompt:      buildDraftPrompt(session.Turns, session.Requirements),
		MaxTokens:   h.config.DraftMaxTokens,
		Temperature: h.config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("sop draft generated", map[string]interface{}{
		"studentId": id,
		"turns":     len(session.Turns),
	})
	return &DraftOutput{SOPDraft: draft}, nil
}

func (h *Handler) generate(ctx context.Context, operation string, req genai.Request) (string, error) {
	text, err := h.generator.Generate(ctx, req)
	metrics.GenerationRequests.WithLabelValues(operation, metrics.Outcome(err)).Inc()
	if err == nil {
		return text, nil
	}

	h.logger.Error("generation failed", map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	})
	if errors.Is(err, genai.ErrGenerationTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return "", commonerrors.NewGenerationTimeoutError(err)
	}
	return "", commonerrors.NewGenerationFailedError(err)
}

func (h *Handler) sessionError(err error, notFoundMessage string) error {
	if errors.Is(err, ErrSessionNotFound) {
		return commonerrors.NewSessionNotFoundError(notFoundMessage)
	}
	return commonerrors.NewSessionStoreFailedError(err)
}

func (h *Handler) turn(role Role, content string) Turn {
	return Turn{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		At:      h.now().UTC(),
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, schema *validation.Schema, v interface{}) bool {
	body, err := commonhttp.ReadBody(w, r)
	if err != nil {
		h.errors.HandleRequestError(w, r, commonerrors.NewRequestBodyError(err))
		return false
	}
	if res := schema.ValidateBytes(body); !res.Valid {
		h.errors.HandleRequestError(w, r, commonerrors.NewValidationFailedError(res.GetErrorMessages()))
		return false
	}
	if err := commonhttp.DecodeLenient(body, v); err != nil {
		h.errors.HandleRequestError(w, r, commonerrors.NewInvalidRequestError(err))
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, fn func() (interface{}, error)) {
	out, err := fn()
	if err != nil {
		h.errors.HandleRequestError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, out)
}
