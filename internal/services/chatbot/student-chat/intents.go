// internal/services/chatbot/student-chat/intents.go
package studentchat

import (
	"fmt"
	"strings"

	"advisor-services/internal/dataset"
	"advisor-services/internal/resolver"
)

const (
	IntentHighestGPA         resolver.Intent = "highest_gpa"
	IntentLowestGPA          resolver.Intent = "lowest_gpa"
	IntentListMajors         resolver.Intent = "list_majors"
	IntentStudentsByLocation resolver.Intent = "students_by_location"
	IntentStudentsByMajor    resolver.Intent = "students_by_major"
)

const (
	FallbackReply     = "I'm sorry, I didn't understand your question."
	NoRecordsReply    = "No student records are available."
	MajorPromptReply  = "Which major would you like to see? For example, 'Show me all Biology majors.'"
	locationPhrase    = "which students want to study in"
	majorPhrasePrefix = "show me all"
	majorPhraseSuffix = "majors"
)

func gpaOf(s dataset.Student) float64     { return float64(s.GPA) }
func majorOf(s dataset.Student) string    { return s.Major }
func locationOf(s dataset.Student) string { return s.LocationPreference }
func idOf(s dataset.Student) string       { return s.StudentID.String() }

// NewTable returns the student chat rules in priority order.
func NewTable() *resolver.Table[dataset.Student] {
	return &resolver.Table[dataset.Student]{
		Rules: []resolver.Rule[dataset.Student]{
			{
				Intent:  IntentHighestGPA,
				Trigger: resolver.Contains("highest gpa"),
				Answer:  extremum("highest", resolver.MaxBy[dataset.Student]),
			},
			{
				Intent:  IntentLowestGPA,
				Trigger: resolver.Contains("lowest gpa"),
				Answer:  extremum("lowest", resolver.MinBy[dataset.Student]),
			},
			{
				Intent: IntentListMajors,
				Trigger: resolver.Or(
					resolver.Contains("list all majors"),
					resolver.ContainsAll("what majors", "have"),
				),
				Answer: listMajors,
			},
			{
				Intent:  IntentStudentsByLocation,
				Trigger: resolver.Contains(locationPhrase),
				Answer:  studentsByLocation,
			},
			{
				Intent:  IntentStudentsByMajor,
				Trigger: resolver.ContainsAll(majorPhrasePrefix, majorPhraseSuffix),
				Answer:  studentsByMajor,
			},
		},
		Fallback: FallbackReply,
	}
}

type pickFunc func([]dataset.Student, func(dataset.Student) float64) (dataset.Student, bool)

func extremum(label string, pick pickFunc) resolver.AnswerFunc[dataset.Student] {
	return func(_ string, records []dataset.Student) string {
		s, ok := pick(records, gpaOf)
		if !ok {
			return NoRecordsReply
		}
		return fmt.Sprintf("The %s GPA is %s, from student_id %s studying %s at %s.",
			label, s.GPA, s.StudentID, s.Major, s.UndergradUniversity)
	}
}

func listMajors(_ string, records []dataset.Student) string {
	majors := resolver.Distinct(records, majorOf)
	return fmt.Sprintf("The majors in our dataset include: %s.", strings.Join(majors, ", "))
}

func studentsByLocation(q string, records []dataset.Student) string {
	location := resolver.LastToken(q)
	matched := resolver.FilterEqualFold(records, locationOf, location)
	if len(matched) == 0 {
		return fmt.Sprintf("No students found with a location preference of %s.", location)
	}
	ids := resolver.Map(matched, idOf)
	return fmt.Sprintf("Students wanting to study in %s are student_id(s): %s.", location, strings.Join(ids, ", "))
}

func studentsByMajor(q string, records []dataset.Student) string {
	major := resolver.Between(q, majorPhrasePrefix, majorPhraseSuffix)
	if major == "" {
		return MajorPromptReply
	}
	matched := resolver.FilterEqualFold(records, majorOf, major)
	if len(matched) == 0 {
		return fmt.Sprintf("No students found majoring in %s.", major)
	}
	ids := resolver.Map(matched, idOf)
	return fmt.Sprintf("Students majoring in %s are student_id(s): %s.", major, strings.Join(ids, ", "))
}
