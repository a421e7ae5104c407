package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startSchema = `{
	"type": "object",
	"properties": {
		"student_id": {"type": ["string", "integer"]},
		"university_name": {"type": "string", "minLength": 1}
	},
	"required": ["student_id", "university_name"]
}`

func TestSchema_ValidateBytes(t *testing.T) {
	schema := MustCompile("start", startSchema)

	tests := []struct {
		name      string
		body      string
		valid     bool
		field     string
		errorCode string
	}{
		{"valid numeric id", `{"student_id": 1, "university_name": "MIT"}`, true, "", ""},
		{"valid string id", `{"student_id": "s-1", "university_name": "MIT"}`, true, "", ""},
		{"missing university", `{"student_id": 1}`, false, "university_name", "REQUIRED_FIELD_MISSING"},
		{"empty university", `{"student_id": 1, "university_name": ""}`, false, "university_name", "MIN_LENGTH_VIOLATION"},
		{"wrong id type", `{"student_id": true, "university_name": "MIT"}`, false, "student_id", "INVALID_TYPE"},
		{"not json", `{"student_id":`, false, "(root)", "INVALID_JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := schema.ValidateBytes([]byte(tt.body))
			assert.Equal(t, tt.valid, res.Valid)
			if tt.valid {
				assert.Empty(t, res.Errors)
				return
			}
			require.True(t, res.HasErrors(tt.field), "errors: %v", res.GetErrorMessages())
			assert.Equal(t, tt.errorCode, res.GetErrorsForField(tt.field)[0].Code)
		})
	}
}

func TestCompile_RejectsBadSchema(t *testing.T) {
	_, err := Compile("broken", `{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile("broken", `not json`) })
}

func TestValidationResult_GetErrorMessages(t *testing.T) {
	res := &ValidationResult{Errors: []ValidationError{{Field: "student_id", Message: "is required"}}}
	assert.Equal(t, []string{"student_id: is required"}, res.GetErrorMessages())
}
