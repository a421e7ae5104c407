// internal/services/documents/sop-conversation/prompts.go
package sopconversation

import (
	"fmt"
	"strings"
)

func renderConversation(turns []Turn) string {
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = fmt.Sprintf("%s: %s", capitalize(string(t.Role)), t.Content)
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// buildTurnPrompt asks for the next question or a partial draft.
func buildTurnPrompt(turns []Turn, requirements string) string {
	return fmt.Sprintf(`Continue this conversation for drafting a Statement of Purpose (SOP) based on the student's responses and the following university-specific requirements:

University Requirements: %s

Conversation so far:
%s

Provide the next question or generate a partial SOP draft based on the responses so far.`,
		requirements, renderConversation(turns))
}

// buildDraftPrompt asks for the complete statement.
func buildDraftPrompt(turns []Turn, requirements string) string {
	return fmt.Sprintf(`Based on the following conversation and the university-specific requirements, generate a full Statement of Purpose (SOP):

University Requirements: %s

Conversation:
%s

Draft the SOP in a professional and structured manner with appropriate sections for introduction, academic background, professional experience, goals, and conclusion.`,
		requirements, renderConversation(turns))
}
