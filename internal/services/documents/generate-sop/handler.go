// internal/services/documents/generate-sop/handler.go
package generatesop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	commonerrors "advisor-services/internal/common/errors"
	commonhttp "advisor-services/internal/common/http"
	"advisor-services/internal/common/logger"
	"advisor-services/internal/common/validation"
	"advisor-services/internal/dataset"
)

const ServiceName = "generate-sop"

var (
	ErrStudentNotFound = errors.New("STUDENT_NOT_FOUND")
)

var requestSchema = validation.MustCompile(ServiceName, inputSchema)

// Handler drafts a statement of purpose from a student's record.
type Handler struct {
	config   *Config
	students *dataset.StudentSet
	tmpl     *template.Template
	logger   logger.Logger
	errors   *commonerrors.ErrorHandler
}

func NewHandler(config *Config, students *dataset.StudentSet, log logger.Logger) (*Handler, error) {
	text := config.Template
	if text == "" {
		text = defaultTemplate
	}
	tmpl, err := template.New(ServiceName).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse sop template: %w", err)
	}

	scoped := log.With(map[string]interface{}{"service": ServiceName})
	return &Handler{
		config:   config,
		students: students,
		tmpl:     tmpl,
		logger:   scoped,
		errors:   commonerrors.NewErrorHandler(scoped),
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := commonhttp.ReadBody(w, r)
	if err != nil {
		h.errors.HandleRequestError(w, r, commonerrors.NewRequestBodyError(err))
		return
	}
	if res := requestSchema.ValidateBytes(body); !res.Valid {
		h.errors.HandleRequestError(w, r, commonerrors.NewValidationFailedError(res.GetErrorMessages()))
		return
	}

	var input Input
	if err := commonhttp.DecodeLenient(body, &input); err != nil {
		h.errors.HandleRequestError(w, r, commonerrors.NewInvalidRequestError(err))
		return
	}

	output, err := h.Execute(r.Context(), &input)
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			err = commonerrors.NewStudentNotFoundError(input.StudentID.String())
		}
		h.errors.HandleRequestError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, output)
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	student, ok := h.students.Find(input.StudentID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStudentNotFound, input.StudentID)
	}

	data := draftData{
		TargetProgram:   strings.TrimSpace(input.TargetProgram),
		Major:           student.Major,
		University:      student.UndergradUniversity,
		GPA:             student.GPA.String(),
		Location:        student.LocationPreference,
		Interests:       student.Interests,
		TestScores:      student.TestScores,
		AdditionalGoals: strings.TrimSpace(input.AdditionalGoals),
	}
	if data.TargetProgram == "" {
		data.TargetProgram = defaultTargetProgram
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render sop: %w", err)
	}

	h.logger.Info("sop drafted", map[string]interface{}{
		"studentId": input.StudentID.String(),
		"length":    buf.Len(),
	})

	return &Output{SOPDraft: strings.TrimSpace(buf.String())}, nil
}
