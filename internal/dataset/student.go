// internal/dataset/student.go
package dataset

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// StudentID accepts either a JSON number or a JSON string and renders as text.
// Ids in canonical integer form are written back as numbers; anything else,
// such as "007" or "+5", stays a string.
type StudentID string

func (id *StudentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StudentID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = StudentID(n.String())
	return nil
}

func (id StudentID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id StudentID) String() string { return string(id) }

// GPA is a grade point average. Missing or non-numeric values decode as 0.0.
type GPA float64

func (g *GPA) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = ParseGPA(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*g = 0
		return nil
	}
	*g = GPA(f)
	return nil
}

// ParseGPA parses s, returning 0.0 for blank or malformed input.
func ParseGPA(s string) GPA {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return GPA(f)
}

// String renders whole values with one decimal place ("4.0") and everything
// else with the shortest exact representation ("3.85").
func (g GPA) String() string {
	s := strconv.FormatFloat(float64(g), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Student is one record of the student dataset. Absent text fields are "".
type Student struct {
	StudentID           StudentID `json:"student_id"`
	GPA                 GPA       `json:"GPA"`
	Major               string    `json:"major"`
	UndergradUniversity string    `json:"undergrad_university"`
	LocationPreference  string    `json:"location_preference"`
	TestScores          string    `json:"test_scores,omitempty"`
	Interests           string    `json:"interests,omitempty"`
}

// StudentSet is the read-only student record set.
type StudentSet struct {
	records []Student
	byID    map[StudentID]int
}

// NewStudentSet indexes records. The first record wins for duplicate ids.
func NewStudentSet(records []Student) *StudentSet {
	set := &StudentSet{
		records: records,
		byID:    make(map[StudentID]int, len(records)),
	}
	for i, r := range records {
		if _, dup := set.byID[r.StudentID]; !dup {
			set.byID[r.StudentID] = i
		}
	}
	return set
}

// All returns the records in file order. Callers must not modify the slice.
func (s *StudentSet) All() []Student {
	if s == nil {
		return nil
	}
	return s.records
}

func (s *StudentSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Find looks a student up by id.
func (s *StudentSet) Find(id StudentID) (Student, bool) {
	if s == nil {
		return Student{}, false
	}
	i, ok := s.byID[StudentID(strings.TrimSpace(string(id)))]
	if !ok {
		return Student{}, false
	}
	return s.records[i], true
}
