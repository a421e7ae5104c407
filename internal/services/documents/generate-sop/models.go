// internal/services/documents/generate-sop/models.go
package generatesop

import "advisor-services/internal/dataset"

type Input struct {
	StudentID       dataset.StudentID `json:"student_id"`
	AdditionalGoals string            `json:"additional_goals"`
	TargetProgram   string            `json:"target_program"`
}

type Output struct {
	SOPDraft string `json:"sop_draft"`
}

const inputSchema = `{
	"type": "object",
	"properties": {
		"student_id": {"type": ["integer", "string"]},
		"additional_goals": {"type": "string"},
		"target_program": {"type": "string"}
	},
	"required": ["student_id"]
}`

// draftData is what the template sees.
type draftData struct {
	TargetProgram   string
	Major           string
	University      string
	GPA             string
	Location        string
	Interests       string
	TestScores      string
	AdditionalGoals string
}
