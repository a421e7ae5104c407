// internal/services/documents/sop-conversation/models.go
package sopconversation

import (
	"time"

	"advisor-services/internal/dataset"
)

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleStudent   Role = "student"
)

// Turn is one message of a drafting conversation.
type Turn struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session is the drafting state for one student.
type Session struct {
	StudentID      string    `json:"student_id"`
	UniversityName string    `json:"university_name"`
	Requirements   string    `json:"requirements"`
	Turns          []Turn    `json:"turns"`
	CreatedAt      time.Time `json:"created_at"`
}

func (s *Session) clone() *Session {
	c := *s
	c.Turns = append([]Turn(nil), s.Turns...)
	return &c
}

type StartInput struct {
	StudentID      dataset.StudentID `json:"student_id"`
	UniversityName string            `json:"university_name"`
}

type ContinueInput struct {
	StudentID       dataset.StudentID `json:"student_id"`
	StudentResponse string            `json:"student_response"`
}

type DraftInput struct {
	StudentID dataset.StudentID
}

type MessageOutput struct {
	Message string `json:"message"`
}

type DraftOutput struct {
	SOPDraft string `json:"sop_draft"`
}

const startSchema = `{
	"type": "object",
	"properties": {
		"student_id": {"type": ["integer", "string"]},
		"university_name": {"type": "string", "minLength": 1}
	},
	"required": ["student_id", "university_name"]
}`

const continueSchema = `{
	"type": "object",
	"properties": {
		"student_id": {"type": ["integer", "string"]},
		"student_response": {"type": "string"}
	},
	"required": ["student_id", "student_response"]
}`
